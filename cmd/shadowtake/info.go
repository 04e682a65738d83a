package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/motion-workshop/shadow-go/mstream"
)

var infoCmd = &cobra.Command{
	Use:   "info <take-dir|stream-file>",
	Short: "Print the stream header and node table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := streamPath(args[0])
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		h, nodes, err := mstream.ReadHeader(f)
		if err != nil {
			return err
		}

		fmt.Printf("version:      %d\n", h.Version)
		fmt.Printf("uuid:         %s\n", h.ID)
		fmt.Printf("num_node:     %d\n", h.NumNode)
		fmt.Printf("frame_stride: %d\n", h.FrameStride)
		if h.NumFrame == 0 {
			fmt.Printf("num_frame:    unknown\n")
		} else {
			fmt.Printf("num_frame:    %d\n", h.NumFrame)
		}
		fmt.Printf("channel_mask: 0x%08X\n", h.ChannelMask)
		fmt.Printf("h:            %g\n", h.H)
		fmt.Printf("location:     %v\n", h.Location)
		fmt.Printf("geomagnetic:  %v\n", h.Geomagnetic)
		fmt.Printf("timestamp:    %s\n", h.Timestamp)
		fmt.Printf("flags:        %d\n", h.Flags)
		for i, n := range nodes {
			fmt.Printf("node %-3d key=%-6d mask=0x%08X\n", i, n.Key, n.Mask)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
