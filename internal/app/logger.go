package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/communities-gateway/internal/config"
)

// NewLogger builds the process logger and installs it as slog's default.
// It writes to stderr because both binaries print their results on stdout.
// Format "json" is for machines; anything else is text with source
// locations. Every record carries the build version.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	jsonFormat := strings.EqualFold(cfg.Format, "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !jsonFormat,
	}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("version", Version))
}

// parseLevel maps a config level name to slog; unknown names mean info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
