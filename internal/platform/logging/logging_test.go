package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("quiet")
	logger.Warn("book store slow", "duration_ms", 1200)

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "book store slow")
	assert.Contains(t, out, "duration_ms")
}

func TestNew_UnknownLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "loud")

	assert.Contains(t, buf.String(), "falling back to info logging")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
