package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shelf/internal/config"
	"github.com/idilsaglam/shelf/internal/logger"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := logger.New(config.Config{LogLevel: "warn", LogFormat: "json"}, &buf)

	l.Info("hidden")
	l.Warn("save store failed", "path", "/tmp/x.json")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "save store failed", entry["msg"])
	assert.Equal(t, "/tmp/x.json", entry["path"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := logger.New(config.Config{LogLevel: "loud", LogFormat: "text"}, &buf)
	assert.Contains(t, buf.String(), "invalid log level configured")

	buf.Reset()
	l.Debug("nope")
	l.Info("yes")
	assert.NotContains(t, buf.String(), "nope")
	assert.Contains(t, buf.String(), "yes")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, ok := logger.ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}
