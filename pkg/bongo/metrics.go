package bongo

import (
	"expvar"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-bongo/internal/render"
)

// Metrics collects operational counters for go-bongo and exposes them
// through expvar. It is safe for concurrent use.
//
// Example usage:
//
//	m := bongo.NewMetrics()
//	m.RegisterExpvar() // visible at /debug/vars (bongo-go -debug-addr)
type Metrics struct {
	starts             atomic.Int64
	stops              atomic.Int64
	configReloads      atomic.Int64
	errorsTotal        atomic.Int64
	eventsEmitted      atomic.Int64
	leftPresses        atomic.Int64
	rightPresses       atomic.Int64
	decorationFailures atomic.Int64

	running atomic.Int32

	// frames is the frame timing of the running game, if any.
	frames atomic.Pointer[render.FrameMetrics]

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
// Call RegisterExpvar() to expose metrics via the /debug/vars endpoint.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the metrics under bongo_* names.
// Safe to call multiple times on one instance; expvar panics if two
// instances register.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	expvar.Publish("bongo_starts_total", expvar.Func(func() any { return m.starts.Load() }))
	expvar.Publish("bongo_stops_total", expvar.Func(func() any { return m.stops.Load() }))
	expvar.Publish("bongo_config_reloads_total", expvar.Func(func() any { return m.configReloads.Load() }))
	expvar.Publish("bongo_errors_total", expvar.Func(func() any { return m.errorsTotal.Load() }))
	expvar.Publish("bongo_events_emitted_total", expvar.Func(func() any { return m.eventsEmitted.Load() }))
	expvar.Publish("bongo_presses_left_total", expvar.Func(func() any { return m.leftPresses.Load() }))
	expvar.Publish("bongo_presses_right_total", expvar.Func(func() any { return m.rightPresses.Load() }))
	expvar.Publish("bongo_decoration_failures_total", expvar.Func(func() any { return m.decorationFailures.Load() }))

	expvar.Publish("bongo_running", expvar.Func(func() any { return m.running.Load() }))
	expvar.Publish("bongo_fps", expvar.Func(func() any { return m.Snapshot().FPS }))
	expvar.Publish("bongo_frame_time_avg_ms", expvar.Func(func() any {
		return float64(m.Snapshot().AvgFrameTime) / 1e6
	}))
	expvar.Publish("bongo_frame_time_max_ms", expvar.Func(func() any {
		return float64(m.Snapshot().MaxFrameTime) / 1e6
	}))
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Starts:             m.starts.Load(),
		Stops:              m.stops.Load(),
		ConfigReloads:      m.configReloads.Load(),
		ErrorsTotal:        m.errorsTotal.Load(),
		EventsEmitted:      m.eventsEmitted.Load(),
		LeftPresses:        m.leftPresses.Load(),
		RightPresses:       m.rightPresses.Load(),
		DecorationFailures: m.decorationFailures.Load(),
		Running:            m.running.Load() > 0,
	}
	if fm := m.frames.Load(); fm != nil {
		snap.Frames = fm.Frames()
		snap.FPS = fm.FPS()
		snap.AvgFrameTime = fm.AverageFrameTime()
		snap.MinFrameTime, snap.MaxFrameTime = fm.FrameTimeRange()
	}
	return snap
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Starts             int64
	Stops              int64
	ConfigReloads      int64
	ErrorsTotal        int64
	EventsEmitted      int64
	LeftPresses        int64
	RightPresses       int64
	DecorationFailures int64

	Running bool

	// Frame timing of the current or last run.
	Frames       int64
	FPS          float64
	AvgFrameTime time.Duration
	MinFrameTime time.Duration
	MaxFrameTime time.Duration
}

// IncrementStarts records a Run call that opened the window.
func (m *Metrics) IncrementStarts() {
	m.starts.Add(1)
}

// IncrementStops records the window closing.
func (m *Metrics) IncrementStops() {
	m.stops.Add(1)
}

// IncrementConfigReloads records a configuration reload.
func (m *Metrics) IncrementConfigReloads() {
	m.configReloads.Add(1)
}

// IncrementErrors records an error occurrence.
func (m *Metrics) IncrementErrors() {
	m.errorsTotal.Add(1)
}

// IncrementEventsEmitted records an event emission.
func (m *Metrics) IncrementEventsEmitted() {
	m.eventsEmitted.Add(1)
}

// IncrementPresses records a paw strike on side.
func (m *Metrics) IncrementPresses(side render.Side) {
	if side == render.SideLeft {
		m.leftPresses.Add(1)
	} else {
		m.rightPresses.Add(1)
	}
}

// IncrementDecorationFailures records a failed shape or opacity step.
func (m *Metrics) IncrementDecorationFailures() {
	m.decorationFailures.Add(1)
}

// SetRunning updates the running state gauge.
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.running.Store(1)
	} else {
		m.running.Store(0)
	}
}

// AttachFrames makes Snapshot report fm's frame timing.
func (m *Metrics) AttachFrames(fm *render.FrameMetrics) {
	m.frames.Store(fm)
}

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	m.starts.Store(0)
	m.stops.Store(0)
	m.configReloads.Store(0)
	m.errorsTotal.Store(0)
	m.eventsEmitted.Store(0)
	m.leftPresses.Store(0)
	m.rightPresses.Store(0)
	m.decorationFailures.Store(0)
	m.running.Store(0)
	m.frames.Store(nil)
}

var defaultMetrics = NewMetrics()

// DefaultMetrics returns the global default Metrics instance.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
