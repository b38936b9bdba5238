package colarr

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger wraps slog.Logger with colarr-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogMap logs a mapped-array mapping or remapping operation.
func (l *Logger) LogMap(op, path string, size int64, err error) {
	if err != nil {
		l.Error(op+" failed",
			"path", path,
			"size", size,
			"error", err,
		)
	} else {
		l.Debug(op+" completed",
			"path", path,
			"size", size,
		)
	}
}

// LogConstruct logs an array construction.
func (l *Logger) LogConstruct(kind Kind, style Style, length int) {
	l.Debug("array constructed",
		"kind", kind.String(),
		"style", style.String(),
		"length", length,
	)
}

// LogSnapshot logs a serialization operation.
func (l *Logger) LogSnapshot(op string, kind Kind, length int, err error) {
	if err != nil {
		l.Error(op+" failed",
			"kind", kind.String(),
			"length", length,
			"error", err,
		)
	} else {
		l.Debug(op+" completed",
			"kind", kind.String(),
			"length", length,
		)
	}
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NoopLogger())
}

// SetLogger installs the logger used by constructors, mapped-array lifecycle
// events and serialization. Passing nil restores the noop logger.
func SetLogger(l *Logger) {
	if l == nil {
		l = NoopLogger()
	}
	defaultLogger.Store(l)
}

func logger() *Logger {
	return defaultLogger.Load()
}
