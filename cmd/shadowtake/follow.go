package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/motion-workshop/shadow-go/internal/follow"
)

var followCmd = &cobra.Command{
	Use:   "follow <take-dir|stream-file>",
	Short: "Tail a recording in progress, printing frames as they land",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fw, _, err := follow.Open(streamPath(args[0]))
		if err != nil {
			return err
		}
		defer fw.Close()

		h := fw.Header()
		logger.Info().
			Str("uuid", h.ID.String()).
			Uint32("num_node", h.NumNode).
			Uint32("frame_stride", h.FrameStride).
			Msg("following stream")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		for {
			frame, err := fw.Next(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logger.Info().Msg("stopped")
					return nil
				}
				return err
			}
			fmt.Println(formatFrame(frame))
		}
	},
}

func init() {
	rootCmd.AddCommand(followCmd)
}
