package log

import (
	"log/slog"

	"github.com/caresync/caresync/internal/errors"
)

// Logger provides structured logging with slog
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = DefaultConfig().Output
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output, opts)
	default:
		handler = slog.NewTextHandler(config.Output, opts)
	}

	return &Logger{
		slog:   slog.New(handler),
		config: config,
	}
}

// Default creates a logger with default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// With returns a new Logger with the given attributes added to all entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// WithError adds error details to the logger.
// Coded errors contribute their error code as a separate attribute.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	if cerr, ok := err.(*errors.Error); ok {
		args := []any{
			"error", cerr.Message,
			"error_code", string(cerr.Code),
		}
		if cerr.Cause != nil {
			args = append(args, "cause", cerr.Cause.Error())
		}
		return l.With(args...)
	}

	return l.With("error", err.Error())
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// Config returns the logger configuration
func (l *Logger) Config() Config {
	return l.config
}
