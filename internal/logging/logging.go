// Package logging builds the slog logger used by the showcase binary.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/showcase/internal/errors"
)

// ParseLevel maps debug, info, warn and error to slog levels.
// Unknown names yield E122.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.New("E122").WithDetail("unknown log level " + level)
}

// New returns a logger writing to w at the given level, in text or json
// format. The logger is tagged with the service name.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, errors.New("E122").WithDetail("unknown log format " + format)
	}

	return slog.New(handler).With("service", "showcase"), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
