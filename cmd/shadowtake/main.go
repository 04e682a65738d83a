// Command shadowtake inspects Shadow take recordings: stream headers,
// channel maps, frame data, and live tailing of a recording in progress.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/motion-workshop/shadow-go/internal/logging"
)

var (
	logLevel  string
	logFormat string

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shadowtake",
	Short: "Inspect Shadow take recordings",
	Long: "Read the binary take stream format (mStream), derive channel offset\n" +
		"maps from the take document (mTake), and tail recordings in progress.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger, err = logging.New(level, logFormat, os.Stderr)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

// streamPath resolves a take directory or a bare file path to the stream
// file. A directory implies the conventional data.mStream inside it.
func streamPath(arg string) string {
	if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
		return filepath.Join(arg, "data.mStream")
	}
	return arg
}

// takePath resolves a take directory to its take document.
func takePath(arg string) string {
	if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
		return filepath.Join(arg, "take.mTake")
	}
	return arg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
