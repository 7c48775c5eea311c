package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/checkin/internal/config"
)

// New creates a slog.Logger configured from application settings.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(os.Stdout, cfg.LogFormat, cfg.LogLevel)
}

func newWithWriter(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
