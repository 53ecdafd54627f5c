package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON logger writing to stdout. Services receive the logger
// via constructor options and must tolerate a nil logger.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
