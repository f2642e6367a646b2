package config

import (
	"fmt"
	"log/slog"
	"os"
)

// NewLogger returns a debug level logger writing JSON lines to path. The
// games own the terminal, so an empty path discards every record.
func NewLogger(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open log file: %w", err)
	}
	l := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, f.Close, nil
}
