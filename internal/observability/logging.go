// Package observability provides structured logging, OpenTelemetry lint
// metrics, and the Prometheus scrape endpoint for long-running modes.
package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. JSON output is meant for machine
// consumption; text output for interactive runs.
func NewLogger(level slog.Level, logJSON bool) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if logJSON {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	return slog.New(handler)
}
