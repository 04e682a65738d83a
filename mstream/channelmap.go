package mstream

import (
	"encoding/json"
	"fmt"
)

// Channel is one entry of the canonical channel table: a named measurement
// stream and its width in floats within a frame.
type Channel struct {
	Name   string
	Stride int
}

// Channels is the canonical channel table. The slice index is the bit
// position in a node's channel mask. The order and widths are fixed by the
// stream format and never change at runtime.
var Channels = []Channel{
	{"Gq", 4}, {"Gdq", 4}, {"Lq", 4}, {"r", 3},
	{"la", 3}, {"lv", 3}, {"lt", 3}, {"c", 4},
	{"a", 3}, {"m", 3}, {"g", 3}, {"temp", 1},
	{"A", 3}, {"M", 3}, {"G", 3}, {"Temp", 1},
	{"dt", 1}, {"timestamp", 1}, {"systemtime", 1},
	{"ea", 1}, {"em", 1}, {"eg", 1}, {"eq", 1}, {"ec", 1},
	{"p", 4}, {"atm", 1}, {"elev", 1}, {"Bq", 4},
}

// NodeIdentity names one node of a take. The stream file itself only stores
// integer keys and channel masks; the string id and name come from the take
// document (package mtake) in the same order as the stream's node table.
type NodeIdentity struct {
	Key  int
	ID   string
	Name string
}

// Range is a half-open [Begin, End) span measured in floats within one
// frame of the pool.
type Range struct {
	Begin int
	End   int
}

// MarshalJSON renders the range as a two element array, the pair form used
// by the Shadow tooling.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Begin, r.End})
}

// ChannelMap locates every active channel inside a frame: node id, then
// channel name, to the channel's float range.
type ChannelMap map[string]map[string]Range

// BuildChannelMap derives the per-frame channel offsets from the take
// document's node identity list and the stream's node table.
//
// The two lists are aligned by position, never by key or name; that
// alignment is a hard invariant of the format, so a length mismatch fails
// with ErrInconsistentNodeCount rather than silently mis-mapping channels.
//
// One global float cursor advances across all nodes in position order and,
// within a node, in ascending mask bit order. The resulting ranges never
// overlap and, read in that order, exactly partition the frame.
func BuildChannelMap(ids []NodeIdentity, nodes []NodeRecord) (ChannelMap, error) {
	if len(ids) != len(nodes) {
		return nil, fmt.Errorf("BuildChannelMap: %d identities, %d stream nodes: %w",
			len(ids), len(nodes), ErrInconsistentNodeCount)
	}

	nodeMap := make(ChannelMap, len(ids))
	itr := 0
	for i, id := range ids {
		mask := nodes[i].Mask

		obj := make(map[string]Range)
		for j, ch := range Channels {
			if mask&(1<<uint(j)) == 0 {
				continue
			}
			obj[ch.Name] = Range{Begin: itr, End: itr + ch.Stride}
			itr += ch.Stride
		}
		nodeMap[id.ID] = obj
	}

	return nodeMap, nil
}
