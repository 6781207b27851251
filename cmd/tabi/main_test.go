package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alexanderramin/tabi/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level    string
		enabled  slog.Level
		disabled slog.Level
	}{
		{"", slog.LevelWarn, slog.LevelInfo},
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"INFO", slog.LevelInfo, slog.LevelDebug},
		{"error", slog.LevelError, slog.LevelWarn},
		{"loud", slog.LevelWarn, slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := newLogger(io.Discard, tt.level)
			assert.True(t, l.Enabled(ctx, tt.enabled))
			assert.False(t, l.Enabled(ctx, tt.disabled))
		})
	}
}

func TestNewSuggestService_MissingKeyIsQuietAtDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := llm.DefaultConfig()

	svc, err := newSuggestService(cfg, newLogger(&buf, ""))

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.Empty(t, buf.String())
}

func TestNewSuggestService_MissingKeyLoggedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	cfg := llm.DefaultConfig()

	_, err := newSuggestService(cfg, newLogger(&buf, "info"))

	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "llm gateway unavailable")
}

func TestNewSuggestService_WithKey(t *testing.T) {
	var buf bytes.Buffer
	cfg := llm.DefaultConfig()
	cfg.APIKey = "key"

	svc, err := newSuggestService(cfg, newLogger(&buf, "debug"))

	require.NoError(t, err)
	assert.NotNil(t, svc)
	assert.Empty(t, buf.String())
}
