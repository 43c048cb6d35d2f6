// Package logger builds the structured logger shared by the commands.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/idilsaglam/shelf/internal/config"
)

// New creates a logger writing to w at the configured level and format and
// installs it as the slog default. An unknown level falls back to info and
// is reported through the new logger.
func New(cfg config.Config, w io.Writer) *slog.Logger {
	level, ok := ParseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}
	return l
}

// ParseLevel maps a case-insensitive level name to a slog level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
