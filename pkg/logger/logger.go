package logger

import (
	"log/slog"
	"os"
)

// Log is non-nil from package load so early startup paths and tests can log
// without ceremony. Init swaps in the service-tagged logger.
var Log = slog.New(newHandler())

func Init() {
	Log = slog.New(newHandler()).With("service", "internmatch-api")
}

func newHandler() slog.Handler {
	// JSON handler for production-ready logging
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
}
