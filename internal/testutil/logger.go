package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
