package logger

import (
	"log/slog"
	"os"
)

// SetupPrettySlog returns a human-readable text logger for local runs.
// JSON handlers are wired for dev/prod in components.SetupLogger.
func SetupPrettySlog() *slog.Logger {
	return slog.New(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}),
	)
}
