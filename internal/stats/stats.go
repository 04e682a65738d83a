// Package stats computes per-channel summary statistics over a decoded
// frame pool, using the channel map to slice each channel's columns out of
// the flat float sequence.
package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/motion-workshop/shadow-go/mstream"
)

// Summary describes one node channel across every frame of a pool. The
// sample set pools all components of the channel (e.g. the x, y, z of an
// acceleration) together.
type Summary struct {
	Node    string
	Channel string
	Range   mstream.Range
	Count   int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Summarize computes one Summary per mapped channel, ordered by the
// channel's offset within the frame. The pool length must be a whole number
// of frames.
func Summarize(pool []float32, h *mstream.Header, m mstream.ChannelMap) ([]Summary, error) {
	stride := h.NumChannel()
	if stride == 0 || len(pool)%stride != 0 {
		return nil, fmt.Errorf("Summarize: pool of %d floats is not a whole number of %d float frames",
			len(pool), stride)
	}
	frames := len(pool) / stride

	var out []Summary
	for node, channels := range m {
		for name, r := range channels {
			samples := make([]float64, 0, frames*(r.End-r.Begin))
			for f := 0; f < frames; f++ {
				base := f * stride
				for i := r.Begin; i < r.End; i++ {
					samples = append(samples, float64(pool[base+i]))
				}
			}

			s := Summary{Node: node, Channel: name, Range: r, Count: len(samples)}
			if len(samples) > 0 {
				s.Mean = stat.Mean(samples, nil)
				s.StdDev = stat.StdDev(samples, nil)
				s.Min, s.Max = samples[0], samples[0]
				for _, v := range samples[1:] {
					if v < s.Min {
						s.Min = v
					}
					if v > s.Max {
						s.Max = v
					}
				}
			}
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Range.Begin < out[j].Range.Begin })
	return out, nil
}
