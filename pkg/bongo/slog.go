package bongo

import (
	"io"
	"log/slog"
	"os"
)

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
//
// Example:
//
//	opts := bongo.DefaultOptions()
//	opts.Logger = bongo.NewSlogAdapter(slog.Default())
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a Logger adapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug logs a debug-level message with optional key-value pairs.
func (s *SlogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

// Info logs an info-level message with optional key-value pairs.
func (s *SlogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

// Warn logs a warning-level message with optional key-value pairs.
func (s *SlogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

// Error logs an error-level message with optional key-value pairs.
func (s *SlogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

// With returns an adapter that adds args to every record.
func (s *SlogAdapter) With(args ...any) *SlogAdapter {
	return &SlogAdapter{logger: s.logger.With(args...)}
}

// NewLogger builds a text or JSON logger writing to w at level.
// A nil w means stderr. Debug level also records the source location.
func NewLogger(w io.Writer, level slog.Level, json bool) Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogAdapter{logger: slog.New(handler)}
}

// DefaultLogger returns a text Logger on stderr at Info level.
func DefaultLogger() Logger {
	return NewLogger(os.Stderr, slog.LevelInfo, false)
}

// DebugLogger returns a text Logger on stderr at Debug level, including
// source location.
func DebugLogger() Logger {
	return NewLogger(os.Stderr, slog.LevelDebug, false)
}

// JSONLogger returns a Logger that outputs JSON-formatted logs.
func JSONLogger(w io.Writer, level slog.Level) Logger {
	return NewLogger(w, level, true)
}

// NopLogger returns a Logger that discards all log messages.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
