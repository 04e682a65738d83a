// Package logging configures the structured logger used by the command
// line tools.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel converts a level name to a zerolog level. An empty string
// selects info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unsupported log level %q", s)
	}
}

// New constructs a logger writing to out. Format "text" renders console
// lines for humans; "json" emits one JSON object per entry.
func New(level zerolog.Level, format string, out io.Writer) (zerolog.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
		// zerolog's native output, leave out as is.
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", format)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
