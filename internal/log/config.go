package log

import (
	"io"
	"log/slog"
	"os"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for detailed debugging information
	LevelDebug Level = iota
	// LevelInfo is for general informational messages
	LevelInfo
	// LevelWarn is for warnings that indicate potential issues
	LevelWarn
	// LevelError is for failures
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ToSlogLevel converts our Level to slog.Level
func (l Level) ToSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a string into a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format represents the output format for logs
type Format int

const (
	// FormatText outputs logs in human-readable text format
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format
	FormatJSON
)

// ParseFormat parses a string into a Format, defaulting to text
func ParseFormat(s string) Format {
	switch s {
	case "json", "JSON":
		return FormatJSON
	default:
		return FormatText
	}
}

// Config holds configuration for the logger
type Config struct {
	// Level is the minimum log level to output
	Level Level

	// Format is the output format (text or JSON)
	Format Format

	// Output is where logs are written (defaults to stderr)
	Output io.Writer

	// AddSource includes source file and line number in logs
	AddSource bool
}

// DefaultConfig logs at INFO level in text format to stderr.
// A CLI writes its structured logs to stderr so command output on
// stdout stays machine-consumable.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// DebugConfig logs everything with source locations, for troubleshooting
func DebugConfig() Config {
	return Config{
		Level:     LevelDebug,
		Format:    FormatText,
		Output:    os.Stderr,
		AddSource: true,
	}
}
