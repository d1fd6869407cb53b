package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/knowledge-base/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "JSON"})

	logger.Info("topic created", slog.String("topic_id", "t1"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "topic created", entry["msg"])
	assert.Equal(t, "knowledge-base", entry["app"])
	assert.Equal(t, "t1", entry["topic_id"])
	assert.NotContains(t, entry, "source", "json format should not include source")
}

func TestNewLogger_TextIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "debug", Format: "text"})

	logger.Debug("source test")

	out := buf.String()
	assert.Contains(t, out, "source=")
	assert.Contains(t, out, "app=knowledge-base")
}

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})

	assert.Same(t, logger, slog.Default())
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run("level_"+strings.TrimSpace(tc.level), func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, config.LogConfig{Level: tc.level, Format: "text"})

			logger.Log(context.Background(), tc.want, "should appear")
			assert.NotZero(t, buf.Len(), "expected output at %v", tc.want)

			buf.Reset()
			logger.Log(context.Background(), tc.want-1, "should be suppressed")
			assert.Zero(t, buf.Len(), "level %v should suppress %v", tc.want, tc.want-1)
		})
	}
}
