// Package config provides configuration data structures for go-bongo.
// It defines the window, decoration, sprite and key binding settings shared
// by the YAML/JSON and Lua configuration formats.
package config

import (
	"fmt"
	"image/color"
	"path/filepath"
)

// Config represents the complete go-bongo configuration.
type Config struct {
	// Window contains window placement and timing options.
	Window WindowConfig
	// Decoration controls the window shape, opacity and clear color.
	Decoration DecorationConfig
	// Sprites names the images drawn each frame.
	Sprites SpriteConfig
	// Keys binds keyboard keys to the left and right paws.
	Keys KeyConfig
	// BaseDir is the directory relative asset paths are resolved against.
	// It is set by the parser to the config file's directory and is empty
	// for configs read from memory.
	BaseDir string
}

// WindowConfig holds window-related configuration options.
type WindowConfig struct {
	// Title is the window title; it is also used to find the window on X11.
	Title string
	// Width is the window width in pixels.
	Width int
	// Height is the window height in pixels.
	Height int
	// Alignment is the screen corner (or edge) the window is placed at.
	Alignment Alignment
	// GapX is the horizontal distance from the aligned screen edge.
	GapX int
	// GapY is the vertical distance from the aligned screen edge.
	GapY int
	// Floating keeps the window above other windows.
	Floating bool
	// FrameRate is the number of updates per second.
	FrameRate int
}

// DecorationConfig holds the settings applied to the window at startup.
type DecorationConfig struct {
	// Transparent clips the window to the opaque pixels of the mask image.
	Transparent bool
	// Mask is the image whose zero-alpha pixels are clipped. Empty means the
	// background sprite.
	Mask string
	// Opacity is the window-manager opacity, 0 (invisible) to 255 (opaque).
	Opacity int
	// Background is the color the window is cleared with every frame.
	Background color.RGBA
	// LeftHanded swaps which paw each key group drives.
	LeftHanded bool
	// SkipTaskbar and SkipPager keep the window out of the taskbar and the
	// workspace pager.
	SkipTaskbar bool
	SkipPager   bool
}

// SpriteConfig names the sprite images. Relative names are resolved against
// Dir, and Dir against the config's BaseDir.
type SpriteConfig struct {
	Dir        string
	Background string
	LeftUp     string
	LeftDown   string
	RightUp    string
	RightDown  string
}

// KeyConfig binds key names to paws. Names are resolved by the input package.
type KeyConfig struct {
	// Left lists the keys that put the left paw down ("key1" in osu! mode).
	Left []string
	// Right lists the keys that put the right paw down ("key2" in osu! mode).
	Right []string
}

// ResolvePath returns p resolved against the sprite directory and BaseDir.
// Absolute paths and empty strings are returned unchanged.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	dir := c.Sprites.Dir
	if !filepath.IsAbs(dir) && c.BaseDir != "" {
		dir = filepath.Join(c.BaseDir, dir)
	}
	return filepath.Join(dir, p)
}

// MaskPath returns the resolved path of the image used for the window shape.
func (c *Config) MaskPath() string {
	if c.Decoration.Mask != "" {
		return c.ResolvePath(c.Decoration.Mask)
	}
	return c.ResolvePath(c.Sprites.Background)
}

// PawKeys returns the keys driving the left and right paws, swapped when
// LeftHanded is set.
func (c *Config) PawKeys() (left, right []string) {
	if c.Decoration.LeftHanded {
		return c.Keys.Right, c.Keys.Left
	}
	return c.Keys.Left, c.Keys.Right
}

// OpacityByte returns Opacity clamped to the 0-255 range.
func (c *Config) OpacityByte() uint8 {
	switch {
	case c.Decoration.Opacity < 0:
		return 0
	case c.Decoration.Opacity > 255:
		return 255
	default:
		return uint8(c.Decoration.Opacity)
	}
}

// Alignment specifies window alignment on screen.
type Alignment int

const (
	// AlignmentTopLeft aligns to top-left corner.
	AlignmentTopLeft Alignment = iota
	// AlignmentTopMiddle aligns to top-center.
	AlignmentTopMiddle
	// AlignmentTopRight aligns to top-right corner.
	AlignmentTopRight
	// AlignmentMiddleLeft aligns to middle-left.
	AlignmentMiddleLeft
	// AlignmentMiddleMiddle aligns to center.
	AlignmentMiddleMiddle
	// AlignmentMiddleRight aligns to middle-right.
	AlignmentMiddleRight
	// AlignmentBottomLeft aligns to bottom-left corner.
	AlignmentBottomLeft
	// AlignmentBottomMiddle aligns to bottom-center.
	AlignmentBottomMiddle
	// AlignmentBottomRight aligns to bottom-right corner.
	AlignmentBottomRight
)

// String returns the string representation of an Alignment.
func (a Alignment) String() string {
	switch a {
	case AlignmentTopLeft:
		return "top_left"
	case AlignmentTopMiddle:
		return "top_middle"
	case AlignmentTopRight:
		return "top_right"
	case AlignmentMiddleLeft:
		return "middle_left"
	case AlignmentMiddleMiddle:
		return "middle_middle"
	case AlignmentMiddleRight:
		return "middle_right"
	case AlignmentBottomLeft:
		return "bottom_left"
	case AlignmentBottomMiddle:
		return "bottom_middle"
	case AlignmentBottomRight:
		return "bottom_right"
	default:
		return "unknown"
	}
}

// ParseAlignment parses a string into an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "top_left", "tl":
		return AlignmentTopLeft, nil
	case "top_middle", "tm", "top_center", "tc":
		return AlignmentTopMiddle, nil
	case "top_right", "tr":
		return AlignmentTopRight, nil
	case "middle_left", "ml":
		return AlignmentMiddleLeft, nil
	case "middle_middle", "mm", "middle_center", "mc", "center", "c":
		return AlignmentMiddleMiddle, nil
	case "middle_right", "mr":
		return AlignmentMiddleRight, nil
	case "bottom_left", "bl":
		return AlignmentBottomLeft, nil
	case "bottom_middle", "bm", "bottom_center", "bc":
		return AlignmentBottomMiddle, nil
	case "bottom_right", "br":
		return AlignmentBottomRight, nil
	default:
		return AlignmentTopLeft, fmt.Errorf("unknown alignment: %s", s)
	}
}

// Position returns the window's top-left corner on a screen of the given
// size, honoring the alignment and gaps.
func (w WindowConfig) Position(screenW, screenH int) (x, y int) {
	switch w.Alignment {
	case AlignmentTopLeft, AlignmentMiddleLeft, AlignmentBottomLeft:
		x = w.GapX
	case AlignmentTopMiddle, AlignmentMiddleMiddle, AlignmentBottomMiddle:
		x = (screenW-w.Width)/2 + w.GapX
	default:
		x = screenW - w.Width - w.GapX
	}

	switch w.Alignment {
	case AlignmentTopLeft, AlignmentTopMiddle, AlignmentTopRight:
		y = w.GapY
	case AlignmentMiddleLeft, AlignmentMiddleMiddle, AlignmentMiddleRight:
		y = (screenH-w.Height)/2 + w.GapY
	default:
		y = screenH - w.Height - w.GapY
	}
	return x, y
}

// Validate checks if the Config has valid values using the comprehensive validator.
// It returns the first validation error found, or nil if the config is valid.
// For detailed validation results including warnings, use NewValidator().Validate().
func (c *Config) Validate() error {
	return ValidateConfig(c)
}
