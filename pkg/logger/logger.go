package logger

import (
	"log/slog"
	"os"
)

var Log = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init installs the production JSON handler. Before Init the package-level
// logger falls back to a plain text handler so library code can log safely
// from tests.
func Init() {
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
