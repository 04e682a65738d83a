package mstream

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
)

// Magic bytes at the start of every take stream file.
const (
	magic1 = 0xFF787878
	magic2 = 0x05397A69
)

const headerSize = 128

// Node table encoding per version. Versions 2 and 3 pack the table as flat
// key/mask integer pairs. Version 4 gives each node an independent 32 byte
// record with the key and mask at fixed offsets and the rest reserved.
const (
	nodeRecordSizeV2 = 8
	nodeRecordSizeV4 = 32
)

// canonicalH is the nominal sensor time step in seconds. Encoders write it
// through a float round trip, so decoded values can drift off by a few ULP.
const canonicalH = 0.01

// Header is the decoded fixed-size prefix of a take stream file.
type Header struct {
	Version     uint32
	ID          uuid.UUID
	NumNode     uint32
	FrameStride uint32 // bytes per frame
	NumFrame    uint32 // 0 = unknown, stream may still be written
	ChannelMask uint32
	H           float32 // time step in seconds
	Location    [3]float32
	Geomagnetic [3]float32
	Timestamp   time.Time // recording start, UTC
	Flags       uint32
}

// NumChannel returns the per-frame float count, FrameStride/4.
func (h *Header) NumChannel() int {
	return int(h.FrameStride) / 4
}

// NodeRecord is one entry of the stream's node table, position ordered. The
// mask selects the node's active channels by bit position in the canonical
// channel table. Reserved carries the unparsed tail of a version 4 record
// and is all zero for versions 2 and 3.
type NodeRecord struct {
	Key      uint32
	Mask     uint32
	Reserved [24]byte
}

// ReadHeader decodes the fixed header and the version-dependent node table.
// On success the cursor of r sits at the first byte of frame data.
//
// A reported frame count of zero means the count was not known at write
// time. ReadHeader then measures the remaining byte length of r and fills
// in the count when it divides evenly by the frame stride; otherwise the
// count stays zero, which is not an error since the file may still be
// growing.
func ReadHeader(r io.ReadSeeker) (*Header, []NodeRecord, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, nil, fmt.Errorf("ReadHeader: fixed header: %w", err)
	}

	le := binary.LittleEndian
	if le.Uint32(buf[0:4]) != magic1 || le.Uint32(buf[4:8]) != magic2 {
		return nil, nil, fmt.Errorf("ReadHeader: %w", ErrInvalidSignature)
	}

	h := &Header{Version: le.Uint32(buf[8:12])}
	if h.Version < 2 || h.Version > 4 {
		return nil, nil, fmt.Errorf("ReadHeader: version %d: %w", h.Version, ErrUnsupportedVersion)
	}

	id, err := uuid.FromBytes(buf[12:28])
	if err != nil {
		return nil, nil, fmt.Errorf("ReadHeader: recording id: %w", err)
	}
	h.ID = id

	h.NumNode = le.Uint32(buf[28:32])
	h.FrameStride = le.Uint32(buf[32:36])
	h.NumFrame = le.Uint32(buf[36:40])
	h.ChannelMask = le.Uint32(buf[40:44])

	h.H = snapTimeStep(math.Float32frombits(le.Uint32(buf[44:48])))
	for i := 0; i < 3; i++ {
		h.Location[i] = math.Float32frombits(le.Uint32(buf[48+4*i : 52+4*i]))
		h.Geomagnetic[i] = math.Float32frombits(le.Uint32(buf[60+4*i : 64+4*i]))
	}

	sec := le.Uint64(buf[72:80])
	usec := le.Uint32(buf[80:84])
	h.Timestamp = time.Unix(int64(sec), int64(usec)*1000).UTC()
	h.Flags = le.Uint32(buf[84:88])
	// buf[88:128] is reserved padding.

	nodes, err := readNodeTable(r, h)
	if err != nil {
		return nil, nil, err
	}

	if h.NumFrame == 0 && h.FrameStride > 0 {
		if err := probeNumFrame(r, h); err != nil {
			return nil, nil, fmt.Errorf("ReadHeader: frame count probe: %w", err)
		}
	}

	return h, nodes, nil
}

// readNodeTable decodes NumNode records in the encoding selected by the
// header version. The version check in ReadHeader guarantees exactly one of
// the two shapes applies.
func readNodeTable(r io.Reader, h *Header) ([]NodeRecord, error) {
	recordSize := nodeRecordSizeV2
	if h.Version == 4 {
		recordSize = nodeRecordSizeV4
	}

	table := make([]byte, int(h.NumNode)*recordSize)
	if _, err := io.ReadFull(r, table); err != nil {
		return nil, fmt.Errorf("ReadHeader: node table: %w", err)
	}

	le := binary.LittleEndian
	nodes := make([]NodeRecord, h.NumNode)
	for i := range nodes {
		rec := table[i*recordSize : (i+1)*recordSize]
		nodes[i].Key = le.Uint32(rec[0:4])
		nodes[i].Mask = le.Uint32(rec[4:8])
		if recordSize == nodeRecordSizeV4 {
			copy(nodes[i].Reserved[:], rec[8:32])
		}
	}
	return nodes, nil
}

// probeNumFrame measures the byte length from the current cursor to the end
// of the resource and back-fills Header.NumFrame when the trailing data is
// an exact multiple of the frame stride. The cursor is restored afterwards.
func probeNumFrame(r io.ReadSeeker, h *Header) error {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return err
	}

	data := end - pos
	if data > 0 && data%int64(h.FrameStride) == 0 {
		h.NumFrame = uint32(data / int64(h.FrameStride))
	}
	return nil
}

// snapTimeStep replaces a decoded time step with exactly canonicalH when it
// sits within a 1e-6 relative tolerance, undoing float round-trip drift
// introduced at encode time. Any other value passes through unchanged.
func snapTimeStep(h float32) float32 {
	if math.Abs(float64(h)-canonicalH) <= 1e-6*canonicalH {
		return canonicalH
	}
	return h
}
