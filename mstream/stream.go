package mstream

import (
	"fmt"
	"io"
	"os"
)

// ReadStream decodes a whole take stream in one pass: the fixed header, the
// node table, and the full frame pool.
func ReadStream(r io.ReadSeeker) (*Header, []NodeRecord, []float32, error) {
	h, nodes, err := ReadHeader(r)
	if err != nil {
		return nil, nil, nil, err
	}

	pool, err := NewFrameReader(r, h).ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	return h, nodes, pool, nil
}

// Open reads a take stream file by path. Shorthand for ReadStream over an
// opened file.
func Open(path string) (*Header, []NodeRecord, []float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("Open: %w", err)
	}
	defer f.Close()

	return ReadStream(f)
}
