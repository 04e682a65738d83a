package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/motion-workshop/shadow-go/internal/stats"
	"github.com/motion-workshop/shadow-go/mstream"
	"github.com/motion-workshop/shadow-go/mtake"
)

var statsCmd = &cobra.Command{
	Use:   "stats <take-dir>",
	Short: "Print per-channel summary statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := mtake.Open(takePath(args[0]))
		if err != nil {
			return err
		}

		h, nodes, pool, err := mstream.Open(streamPath(args[0]))
		if err != nil {
			return err
		}

		nodeMap, err := mstream.BuildChannelMap(ids, nodes)
		if err != nil {
			return err
		}

		summaries, err := stats.Summarize(pool, h, nodeMap)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "node\tchannel\toffset\tcount\tmean\tstddev\tmin\tmax")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t[%d,%d)\t%d\t%.6g\t%.6g\t%.6g\t%.6g\n",
				s.Node, s.Channel, s.Range.Begin, s.Range.End,
				s.Count, s.Mean, s.StdDev, s.Min, s.Max)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
