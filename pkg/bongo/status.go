package bongo

import "time"

// Status represents the current state of a Bongo instance.
type Status struct {
	// Running indicates if the overlay window is open.
	Running bool
	// StartTime is when Run was last called (zero if never started).
	StartTime time.Time
	// Presses counts paw strikes since the instance was created.
	Presses uint64
	// Shaped reports whether the window was clipped to the mask at startup.
	Shaped bool
	// OpacitySet reports whether the window opacity property was written.
	OpacitySet bool
	// LastError is the most recent error encountered (nil if none).
	LastError error
	// ConfigSource describes the configuration source (file path, "embedded:<path>" or "reader").
	ConfigSource string
}

// ErrorHandler is a callback for runtime errors.
// It is called asynchronously when errors occur during operation.
// Do not block in the handler; perform only quick, non-blocking operations.
type ErrorHandler func(err error)

// EventHandler is a callback for lifecycle events.
// It is called asynchronously; do not block in the handler.
type EventHandler func(event Event)

// Event represents a lifecycle event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
}

// EventType enumerates lifecycle event types.
// The underlying integer values are implementation details and should not
// be relied upon for serialization. Use the constant names for comparison.
type EventType int

const (
	// EventStarted is emitted when the overlay window opens.
	EventStarted EventType = iota
	// EventStopped is emitted when the overlay window closes.
	EventStopped
	// EventConfigReloaded is emitted when configuration is reloaded.
	EventConfigReloaded
	// EventDecorated is emitted once the startup shape and opacity steps ran.
	EventDecorated
	// EventError is emitted when a recoverable error occurs.
	EventError
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventConfigReloaded:
		return "config_reloaded"
	case EventDecorated:
		return "decorated"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}
