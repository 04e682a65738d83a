package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/motion-workshop/shadow-go/mstream"
)

var framesCount int

var framesCmd = &cobra.Command{
	Use:   "frames <take-dir|stream-file>",
	Short: "Print frame data, one frame per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(streamPath(args[0]))
		if err != nil {
			return err
		}
		defer f.Close()

		h, _, err := mstream.ReadHeader(f)
		if err != nil {
			return err
		}

		fr := mstream.NewFrameReader(f, h)
		for i := 0; framesCount == 0 || i < framesCount; i++ {
			frame, err := fr.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			fmt.Println(formatFrame(frame))
		}
		return nil
	},
}

func formatFrame(frame []float32) string {
	var b strings.Builder
	for i, v := range frame {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", v)
	}
	return b.String()
}

func init() {
	framesCmd.Flags().IntVarP(&framesCount, "count", "n", 0, "number of frames to print (0 = all)")
	rootCmd.AddCommand(framesCmd)
}
