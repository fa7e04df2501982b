package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/caresync/caresync/internal/errors"
)

// Runtime targets select the default API origin when no explicit origin is
// configured. The mobile emulators cannot reach the host's loopback address
// directly, so each target maps to a fixed origin.
const (
	TargetAndroidEmulator = "android-emulator"
	TargetIOSSimulator    = "ios-simulator"
	TargetLocal           = "local"
)

// defaultOrigins is the fixed lookup table of per-target API origins.
var defaultOrigins = map[string]string{
	TargetAndroidEmulator: "http://10.0.2.2:8000",
	TargetIOSSimulator:    "http://127.0.0.1:8000",
	TargetLocal:           "http://localhost:8000",
}

// Environment variables recognized by Load.
const (
	EnvAPIURL   = "CARESYNC_API_URL"
	EnvTarget   = "CARESYNC_TARGET"
	EnvStateDir = "CARESYNC_STATE_DIR"
	EnvLogLevel = "CARESYNC_LOG_LEVEL"
)

// Config holds the resolved client configuration.
//
// The API origin is resolved exactly once, at load time, and injected into
// the API client; nothing downstream re-derives it per call.
type Config struct {
	// APIURL is the backend origin, without a trailing slash.
	APIURL string `yaml:"api_url"`

	// RuntimeTarget selects a default origin when APIURL is empty.
	RuntimeTarget string `yaml:"runtime_target"`

	// StateDir is where the session store keeps its files.
	StateDir string `yaml:"state_dir"`

	// Timeout bounds every API round trip. Not read from the config file.
	Timeout time.Duration `yaml:"-"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() *Config {
	return &Config{
		RuntimeTarget: TargetLocal,
		StateDir:      defaultStateDir(),
		Timeout:       30 * time.Second,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load resolves the client configuration.
//
// Precedence, highest first:
//  1. Environment variables (CARESYNC_API_URL et al.)
//  2. Config file (~/.caresync/config.yaml, or the given path)
//  3. Built-in defaults keyed by runtime target
//
// A .env file in the working directory is loaded first, best-effort, so a
// development checkout can pin its backend without exporting variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = filepath.Join(cfg.StateDir, "config.yaml")
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("failed to parse config file: %s", path), err)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvTarget); v != "" {
		cfg.RuntimeTarget = v
	}
	if v := os.Getenv(EnvStateDir); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	origin, err := cfg.resolveOrigin()
	if err != nil {
		return nil, err
	}
	cfg.APIURL = origin

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return cfg, nil
}

// resolveOrigin picks the API origin: explicit value if set, otherwise the
// fixed per-target default. Trailing slashes are stripped so path joining
// stays predictable.
func (c *Config) resolveOrigin() (string, error) {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/"), nil
	}

	target := c.RuntimeTarget
	if target == "" {
		target = TargetLocal
	}

	origin, ok := defaultOrigins[target]
	if !ok {
		return "", errors.NewConfigTargetError(target)
	}
	return origin, nil
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".caresync"
	}
	return filepath.Join(home, ".caresync")
}
