package mstream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// FrameReader walks the frame pool of a take stream one frame at a time.
// The reader must be positioned at a frame boundary, which is where
// ReadHeader leaves it. A FrameReader owns its cursor; do not read from r
// through another path while the FrameReader is in use.
type FrameReader struct {
	r      io.Reader
	stride int
	buf    []byte
}

// NewFrameReader returns a FrameReader over r using the frame stride from
// the decoded header.
func NewFrameReader(r io.Reader, h *Header) *FrameReader {
	return &FrameReader{
		r:      r,
		stride: int(h.FrameStride),
		buf:    make([]byte, h.FrameStride),
	}
}

// Next reads exactly one frame and returns it as FrameStride/4 floats.
// A clean end of stream at a frame boundary returns io.EOF. A partial frame
// fails with an error wrapping ErrShortFrame; the writer may still be
// mid-frame, in which case the caller can retry once more bytes land (see
// internal/follow).
func (fr *FrameReader) Next() ([]float32, error) {
	n, err := io.ReadFull(fr.r, fr.buf)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err == io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("Next: %d of %d bytes: %w", n, fr.stride, ErrShortFrame)
	}
	if err != nil {
		return nil, fmt.Errorf("Next: %w", err)
	}
	return parseFloats(fr.buf), nil
}

// ReadAll drains the reader to end of stream in one pass and reinterprets
// the bytes as a flat float sequence. Any trailing bytes short of a whole
// float are dropped. Concatenated Next results over a whole recording equal
// one ReadAll call.
func (fr *FrameReader) ReadAll() ([]float32, error) {
	data, err := io.ReadAll(fr.r)
	if err != nil {
		return nil, fmt.Errorf("ReadAll: %w", err)
	}
	return parseFloats(data[:len(data)-len(data)%4]), nil
}

// parseFloats reinterprets little-endian bytes as single precision floats.
func parseFloats(data []byte) []float32 {
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
	}
	return out
}
