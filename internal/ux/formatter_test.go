package ux

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"status": "ok"}))
	assert.Contains(t, buf.String(), `"status": "ok"`)
}

func TestNewFormatter_JSONCompact(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf, Compact: true})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"status": "ok"}))
	assert.Equal(t, "{\"status\":\"ok\"}\n", buf.String())
}

func TestNewFormatter_YAML(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"status": "ok"}))
	assert.Contains(t, buf.String(), "status: ok")
}

func TestNewFormatter_Unknown(t *testing.T) {
	_, err := NewFormatter("xml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestStyles_Table(t *testing.T) {
	s := DefaultStyles()
	out := s.Table(
		[]string{"ID", "DATE"},
		[][]string{
			{"1", "2024-01-02"},
			{"22", "2024-01-03"},
		},
	)

	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "2024-01-03")
	assert.Contains(t, out, "22")
}
