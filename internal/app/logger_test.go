package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/communities-gateway/internal/config"
)

func TestNewLogger_InstallsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})
	assert.Same(t, logger.Handler(), slog.Default().Handler())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "text"})

	logger.Info("store refreshed")
	assert.Zero(t, buf.Len())

	logger.Log(context.Background(), slog.LevelWarn, "fetch failed")
	assert.Contains(t, buf.String(), "fetch failed")
}

func TestNewLogger_Formats(t *testing.T) {
	t.Parallel()
	var text, js bytes.Buffer

	newLogger(&text, config.LogConfig{Format: "text"}).Info("dispatch")
	newLogger(&js, config.LogConfig{Format: "JSON"}).Info("dispatch")

	assert.Contains(t, text.String(), "source=")
	assert.Contains(t, text.String(), "version="+Version)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &rec))
	assert.Equal(t, "dispatch", rec["msg"])
	assert.Equal(t, Version, rec["version"])
	assert.NotContains(t, rec, "source")
}
