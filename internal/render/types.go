// Package render provides the Ebiten-based overlay window for go-bongo.
package render

import (
	"fmt"
	"image/color"
)

// Config holds the rendering configuration options.
type Config struct {
	// Width is the window width in pixels.
	Width int
	// Height is the window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// TPS is the number of Update calls per second.
	TPS int
	// Background is the color the screen is cleared with every frame.
	Background color.RGBA
	// ScreenTransparent lets the compositor see the alpha channel of the
	// screen. Requires a compositor on X11.
	ScreenTransparent bool
	// Floating keeps the window above other windows.
	Floating bool
	// Position computes the window's top-left corner from the monitor size.
	// Nil leaves placement to the window manager.
	Position func(monitorW, monitorH int) (x, y int)
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Width:      612,
		Height:     354,
		Title:      "Bongo Cat",
		TPS:        60,
		Background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Floating:   true,
	}
}

// Validate checks if the Config has valid values.
// Returns an error if Width, Height or TPS are not positive.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	return nil
}

// Side identifies a paw.
type Side int

const (
	// SideLeft is the left paw.
	SideLeft Side = iota
	// SideRight is the right paw.
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}
