package bongo

import "time"

// Defaults for Options fields left at their zero value.
const (
	// DefaultLoadAttempts is how many times a configuration is read before
	// the constructor gives up.
	DefaultLoadAttempts = 1
	// DefaultLoadRetryDelay is the pause between configuration read attempts.
	DefaultLoadRetryDelay = time.Second
)

// Options configures the Bongo instance behavior.
type Options struct {
	// WindowTitle overrides the window title.
	// Empty string means use the configuration file's value.
	WindowTitle string

	// FrameRate overrides the configuration file's window.fps.
	// Zero means use the configuration file's value.
	FrameRate int

	// NoDecoration skips the startup shape and opacity steps.
	NoDecoration bool

	// LoadAttempts is how many times the configuration is read and
	// validated before giving up. Values below 1 mean DefaultLoadAttempts.
	// Retrying helps when the file is written by another process at login.
	LoadAttempts int

	// LoadRetryDelay is the pause between load attempts.
	// Zero means DefaultLoadRetryDelay.
	LoadRetryDelay time.Duration

	// Logger sets a custom logger for debug/info messages.
	// If nil, no logging is performed.
	Logger Logger

	// Metrics sets a custom metrics collector for operational metrics.
	// If nil, DefaultMetrics() is used.
	// Metrics can be exposed via /debug/vars by calling Metrics.RegisterExpvar().
	Metrics *Metrics

	// WatchConfig enables automatic configuration hot-reloading when the
	// configuration file or one of its sprite images changes on disk.
	// Only instances created with New can watch.
	WatchConfig bool

	// WatchDebounce sets the debounce interval for file change events.
	// Zero means use DefaultWatchDebounce.
	WatchDebounce time.Duration
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		LoadAttempts:   DefaultLoadAttempts,
		LoadRetryDelay: DefaultLoadRetryDelay,
		WatchDebounce:  DefaultWatchDebounce,
	}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
