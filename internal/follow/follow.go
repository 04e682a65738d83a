// Package follow tails a take stream file that is still being written.
//
// The stream format has no framing marker, so a reader that catches up with
// the writer sees either a clean end of file at a frame boundary or a
// partial frame. Both mean the same thing here: wait for the writer, rewind
// to the last whole frame, and try again.
package follow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/motion-workshop/shadow-go/mstream"
)

// Follower reads frames from a growing stream file. It owns the file handle
// exclusively until Close.
type Follower struct {
	f      *os.File
	header *mstream.Header
	fr     *mstream.FrameReader
	pos    int64 // offset of the next whole frame

	// MaxWait bounds how long one Next call waits for the writer before
	// giving up and returning the underlying short-read error. Zero waits
	// forever (until the context ends).
	MaxWait time.Duration
}

// Open opens a stream file, decodes its header and node table, and returns
// a Follower positioned at the first frame.
func Open(path string) (*Follower, []mstream.NodeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("Open: %w", err)
	}

	h, nodes, err := mstream.ReadHeader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("Open: %w", err)
	}

	return &Follower{
		f:      f,
		header: h,
		fr:     mstream.NewFrameReader(f, h),
		pos:    pos,
	}, nodes, nil
}

// Header returns the decoded stream header.
func (fw *Follower) Header() *mstream.Header {
	return fw.header
}

// Next returns the next frame, blocking while the writer has not produced
// one yet. Retries run under exponential backoff until a frame arrives, ctx
// ends, or MaxWait elapses.
func (fw *Follower) Next(ctx context.Context) ([]float32, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = fw.MaxWait

	for {
		frame, err := fw.fr.Next()
		if err == nil {
			fw.pos += int64(fw.header.FrameStride)
			return frame, nil
		}
		if err != io.EOF && !errors.Is(err, mstream.ErrShortFrame) {
			return nil, err
		}

		// Caught up with the writer. Rewind to the last whole frame
		// boundary so the partial bytes are re-read intact next time.
		if _, serr := fw.f.Seek(fw.pos, io.SeekStart); serr != nil {
			return nil, fmt.Errorf("Next: rewind: %w", serr)
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Close releases the underlying file.
func (fw *Follower) Close() error {
	return fw.f.Close()
}
