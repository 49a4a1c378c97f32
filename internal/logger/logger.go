// Package logger builds the slog logger every component of the service
// writes its structured key-value logs through.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config selects the handler, verbosity and destination of service logs.
type Config struct {
	Level  string
	Format string
	Output string
}

// NewLogger builds a logger for the given configuration. A nil output
// selects the destination named by cfg.Output; tests pass a buffer instead.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = resolveOutput(cfg.Output)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

func resolveOutput(name string) io.Writer {
	switch name {
	case "stderr":
		return os.Stderr
	case "file":
		file, err := os.OpenFile("swe.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file, falling back to stdout: %v\n", err)
			return os.Stdout
		}
		return file
	default:
		return os.Stdout
	}
}

// parseLevel maps a config string to a slog level. Anything unrecognized,
// including the empty string, means info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
