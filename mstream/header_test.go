package mstream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

var testID = uuid.MustParse("b7f2a9c4-21d5-4c7e-9a0b-3f6d8e51c0aa")

// testStream describes a synthetic take stream for the encode helper.
type testStream struct {
	magic1   uint32
	magic2   uint32
	version  uint32
	nodes    []NodeRecord
	stride   uint32
	numFrame uint32
	h        float32
	sec      uint64
	usec     uint32
	flags    uint32
	pool     []byte
}

func defaultStream() testStream {
	return testStream{
		magic1:  magic1,
		magic2:  magic2,
		version: 2,
		stride:  32,
		h:       0.01,
		sec:     1561500000,
		usec:    123456,
	}
}

// encode assembles the stream's on-disk byte layout.
func (ts testStream) encode() []byte {
	le := binary.LittleEndian
	buf := make([]byte, headerSize)
	le.PutUint32(buf[0:4], ts.magic1)
	le.PutUint32(buf[4:8], ts.magic2)
	le.PutUint32(buf[8:12], ts.version)
	copy(buf[12:28], testID[:])
	le.PutUint32(buf[28:32], uint32(len(ts.nodes)))
	le.PutUint32(buf[32:36], ts.stride)
	le.PutUint32(buf[36:40], ts.numFrame)
	le.PutUint32(buf[44:48], math.Float32bits(ts.h))
	le.PutUint64(buf[72:80], ts.sec)
	le.PutUint32(buf[80:84], ts.usec)
	le.PutUint32(buf[84:88], ts.flags)

	for _, n := range ts.nodes {
		var rec []byte
		if ts.version == 4 {
			rec = make([]byte, nodeRecordSizeV4)
			copy(rec[8:], n.Reserved[:])
		} else {
			rec = make([]byte, nodeRecordSizeV2)
		}
		le.PutUint32(rec[0:4], n.Key)
		le.PutUint32(rec[4:8], n.Mask)
		buf = append(buf, rec...)
	}

	return append(buf, ts.pool...)
}

func TestReadHeaderFields(t *testing.T) {
	ts := defaultStream()
	ts.nodes = []NodeRecord{{Key: 1, Mask: 0x81}, {Key: 2, Mask: 0x80}}
	ts.numFrame = 7
	ts.flags = 3
	ts.pool = make([]byte, 7*ts.stride)

	h, nodes, err := ReadHeader(bytes.NewReader(ts.encode()))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}

	if h.Version != 2 {
		t.Errorf("unexpected version: %d", h.Version)
	}
	if h.ID != testID {
		t.Errorf("unexpected recording id: %s", h.ID)
	}
	if h.NumNode != 2 || len(nodes) != 2 {
		t.Errorf("unexpected node count: %d records, NumNode=%d", len(nodes), h.NumNode)
	}
	if h.FrameStride != 32 || h.NumFrame != 7 || h.Flags != 3 {
		t.Errorf("unexpected header fields: %+v", h)
	}
	if nodes[0] != (NodeRecord{Key: 1, Mask: 0x81}) {
		t.Errorf("unexpected node record: %+v", nodes[0])
	}

	want := time.Unix(1561500000, 123456000).UTC()
	if !h.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", h.Timestamp, want)
	}
}

func TestReadHeaderCursorOffset(t *testing.T) {
	cases := []struct {
		version uint32
		want    int64
	}{
		{2, headerSize + 3*nodeRecordSizeV2},
		{3, headerSize + 3*nodeRecordSizeV2},
		{4, headerSize + 3*nodeRecordSizeV4},
	}
	for _, tc := range cases {
		ts := defaultStream()
		ts.version = tc.version
		ts.nodes = make([]NodeRecord, 3)
		ts.numFrame = 1
		ts.pool = make([]byte, ts.stride)

		r := bytes.NewReader(ts.encode())
		if _, _, err := ReadHeader(r); err != nil {
			t.Fatalf("version %d: ReadHeader failed: %v", tc.version, err)
		}
		pos, _ := r.Seek(0, io.SeekCurrent)
		if pos != tc.want {
			t.Errorf("version %d: cursor at %d, want %d", tc.version, pos, tc.want)
		}
	}
}

func TestReadHeaderV4Reserved(t *testing.T) {
	node := NodeRecord{Key: 9, Mask: 0x03}
	for i := range node.Reserved {
		node.Reserved[i] = byte(i + 1)
	}

	ts := defaultStream()
	ts.version = 4
	ts.nodes = []NodeRecord{node}

	_, nodes, err := ReadHeader(bytes.NewReader(ts.encode()))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if nodes[0] != node {
		t.Errorf("v4 record not preserved: %+v", nodes[0])
	}
}

func TestReadHeaderBadMagic(t *testing.T) {
	ts := defaultStream()
	ts.magic1 = 0xDEADBEEF

	_, _, err := ReadHeader(bytes.NewReader(ts.encode()))
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err = %v, want ErrInvalidSignature", err)
	}
}

func TestReadHeaderBadVersion(t *testing.T) {
	for _, version := range []uint32{0, 1, 5} {
		ts := defaultStream()
		ts.version = version

		_, _, err := ReadHeader(bytes.NewReader(ts.encode()))
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("version %d: err = %v, want ErrUnsupportedVersion", version, err)
		}
	}
}

func TestReadHeaderUnknownFrameCount(t *testing.T) {
	ts := defaultStream()
	ts.numFrame = 0
	ts.pool = make([]byte, 5*ts.stride)

	r := bytes.NewReader(ts.encode())
	h, _, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.NumFrame != 5 {
		t.Errorf("NumFrame = %d, want 5", h.NumFrame)
	}

	// The probe must not move the cursor off the first frame byte.
	pos, _ := r.Seek(0, io.SeekCurrent)
	if pos != headerSize {
		t.Errorf("cursor at %d after probe, want %d", pos, headerSize)
	}
}

func TestReadHeaderAmbiguousFrameCount(t *testing.T) {
	ts := defaultStream()
	ts.numFrame = 0
	ts.pool = make([]byte, 5*ts.stride+3)

	h, _, err := ReadHeader(bytes.NewReader(ts.encode()))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.NumFrame != 0 {
		t.Errorf("NumFrame = %d, want 0 for inexact trailing length", h.NumFrame)
	}
}

func TestReadHeaderTruncated(t *testing.T) {
	data := defaultStream().encode()
	if _, _, err := ReadHeader(bytes.NewReader(data[:100])); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestTimeStepSnap(t *testing.T) {
	// A few ULP off the canonical 0.01 step, inside the 1e-6 relative
	// tolerance.
	drifted := math.Float32frombits(math.Float32bits(0.01) + 3)
	if drifted == float32(0.01) {
		t.Fatal("test value did not drift")
	}

	ts := defaultStream()
	ts.h = drifted
	h, _, err := ReadHeader(bytes.NewReader(ts.encode()))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.H != float32(0.01) {
		t.Errorf("H = %v, want snapped 0.01", h.H)
	}

	// Outside the tolerance the decoded value passes through unchanged.
	ts.h = 0.011
	h, _, err = ReadHeader(bytes.NewReader(ts.encode()))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.H != float32(0.011) {
		t.Errorf("H = %v, want 0.011 untouched", h.H)
	}
}
