package render

import (
	"sync"
	"time"
)

// FrameMetrics tracks update timing. Game records one frame per Update and
// the bongo package reports the numbers through its metrics.
type FrameMetrics struct {
	mu sync.Mutex

	// FPS is recomputed at the end of every window.
	window       time.Duration
	windowStart  time.Time
	windowFrames int64
	fps          float64

	frames   int64
	total    time.Duration
	min, max time.Duration
}

// NewFrameMetrics returns metrics that recompute FPS every window
// (one second when window <= 0).
func NewFrameMetrics(window time.Duration) *FrameMetrics {
	if window <= 0 {
		window = time.Second
	}
	return &FrameMetrics{window: window, windowStart: time.Now()}
}

// RecordFrame adds one frame that took d.
func (fm *FrameMetrics) RecordFrame(d time.Duration) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	fm.frames++
	fm.total += d
	if fm.frames == 1 || d < fm.min {
		fm.min = d
	}
	if d > fm.max {
		fm.max = d
	}

	fm.windowFrames++
	now := time.Now()
	if elapsed := now.Sub(fm.windowStart); elapsed >= fm.window {
		fm.fps = float64(fm.windowFrames) / elapsed.Seconds()
		fm.windowFrames = 0
		fm.windowStart = now
	}
}

// FPS returns the frame rate measured over the last complete window.
func (fm *FrameMetrics) FPS() float64 {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.fps
}

// Frames returns the number of frames recorded.
func (fm *FrameMetrics) Frames() int64 {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.frames
}

// AverageFrameTime returns the mean frame time, or 0 before any frame.
func (fm *FrameMetrics) AverageFrameTime() time.Duration {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if fm.frames == 0 {
		return 0
	}
	return fm.total / time.Duration(fm.frames)
}

// FrameTimeRange returns the shortest and longest frame seen, both 0
// before any frame.
func (fm *FrameMetrics) FrameTimeRange() (min, max time.Duration) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.min, fm.max
}
