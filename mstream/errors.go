package mstream

import "errors"

var (
	// ErrInvalidSignature means the input does not start with the mStream
	// magic bytes and is not a take stream file at all.
	ErrInvalidSignature = errors.New("missing take stream format signature")

	// ErrUnsupportedVersion means the header carried a version outside the
	// supported set {2, 3, 4}.
	ErrUnsupportedVersion = errors.New("unsupported take stream format version")

	// ErrInconsistentNodeCount means the node identity list and the decoded
	// node record list differ in length, so positional alignment between the
	// two is impossible.
	ErrInconsistentNodeCount = errors.New("node identity count does not match stream node count")

	// ErrShortFrame means fewer than Header.FrameStride bytes remained when
	// a full frame was requested. The writer may still be mid-frame.
	ErrShortFrame = errors.New("short frame at end of stream")
)
