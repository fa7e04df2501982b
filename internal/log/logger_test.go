package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caresync/caresync/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	err := errors.New(errors.ErrCodeStoreWrite, "failed to persist session")
	logger.WithError(err).Warn("session not saved")

	out := buf.String()
	assert.Contains(t, out, "STORE-002")
	assert.Contains(t, out, "failed to persist session")
}

func TestDefaultLogger_Fallback(t *testing.T) {
	SetDefaultLogger(nil)
	logger := DefaultLogger()
	assert.NotNil(t, logger)

	custom := New(Config{Level: LevelDebug, Format: FormatText, Output: &bytes.Buffer{}})
	SetDefaultLogger(custom)
	assert.Same(t, custom, DefaultLogger())
}
