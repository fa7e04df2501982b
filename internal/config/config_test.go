package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTarget, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrideStripsTrailingSlash(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://api.caresync.example.com/")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.caresync.example.com", cfg.APIURL)
}

func TestLoad_RuntimeTargetTable(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{TargetAndroidEmulator, "http://10.0.2.2:8000"},
		{TargetIOSSimulator, "http://127.0.0.1:8000"},
		{TargetLocal, "http://localhost:8000"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Setenv(EnvAPIURL, "")
			t.Setenv(EnvTarget, tt.target)

			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.APIURL)
		})
	}
}

func TestLoad_UnknownTarget(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTarget, "flip-phone")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flip-phone")
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTarget, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "api_url: https://staging.caresync.example.com\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.caresync.example.com", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://file.example.com\n"), 0o600))

	t.Setenv(EnvAPIURL, "https://env.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [unclosed\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
