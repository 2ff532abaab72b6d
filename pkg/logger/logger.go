package logger

import (
	"log/slog"
	"os"
)

// Log is usable from package init on; Init reconfigures it for the process.
var Log = newLogger()

func newLogger() *slog.Logger {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(handler).With("service", "meup-backend")
}

func Init() {
	Log = newLogger()
}
