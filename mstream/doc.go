// Package mstream reads the Shadow binary take stream format (mStream).
//
// A stream file starts with a fixed 128 byte header, followed by a node
// table whose encoding depends on the format version, followed by a pool of
// little-endian single precision floats. The pool is a sequence of frames,
// each Header.FrameStride bytes wide, one time slice of measurements across
// all nodes and their active channels.
//
// Typical buffered use:
//
//	header, nodes, pool, err := mstream.Open("data.mStream")
//
// Streaming use, one frame at a time:
//
//	header, nodes, err := mstream.ReadHeader(f)
//	fr := mstream.NewFrameReader(f, header)
//	for {
//		frame, err := fr.Next()
//		...
//	}
//
// The channel layout inside a frame is not stored in the stream itself. It
// is derived from each node's channel mask together with the ordered node
// identity list from the take document (mTake format, see package mtake):
//
//	channelMap, err := mstream.BuildChannelMap(ids, nodes)
package mstream
