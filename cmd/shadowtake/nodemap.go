package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/motion-workshop/shadow-go/mstream"
	"github.com/motion-workshop/shadow-go/mtake"
)

var mapCmd = &cobra.Command{
	Use:   "map <take-dir>",
	Short: "Print the node channel map as JSON",
	Long: "Combine the take document's node identity list with the stream's node\n" +
		"mask table and print the resulting per-frame channel offset map.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := mtake.Open(takePath(args[0]))
		if err != nil {
			return err
		}

		f, err := os.Open(streamPath(args[0]))
		if err != nil {
			return err
		}
		defer f.Close()

		_, nodes, err := mstream.ReadHeader(f)
		if err != nil {
			return err
		}

		nodeMap, err := mstream.BuildChannelMap(ids, nodes)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(nodeMap)
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
}
