// Package mtake reads the minimal slice of the take document (mTake
// format, JSON) that the stream decoder needs: the ordered node identity
// list. The document describes much more — timestamps, durations, the
// mapping onto the skeletal definition — but none of that affects frame
// decoding, so it is passed through untouched.
package mtake

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/motion-workshop/shadow-go/mstream"
)

// Document is the consumed portion of a take document.
type Document struct {
	Items []Item `json:"items"`
}

type Item struct {
	Key  int    `json:"key"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParseDocument decodes a take document and returns its node identities in
// document order. Array order matters: it is the positional alignment with
// the stream's node table, the take's string ids and names are not stored
// in the stream file itself.
func ParseDocument(r io.Reader) ([]mstream.NodeIdentity, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("ParseDocument: %w", err)
	}

	ids := make([]mstream.NodeIdentity, len(doc.Items))
	for i, item := range doc.Items {
		ids[i] = mstream.NodeIdentity{Key: item.Key, ID: item.ID, Name: item.Name}
	}
	return ids, nil
}

// Open reads a take document file by path.
func Open(path string) ([]mstream.NodeIdentity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	defer f.Close()

	return ParseDocument(f)
}
