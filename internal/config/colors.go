package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// parseBool parses a boolean value from a string.
// Accepts: yes, true, 1 (case-insensitive) as true; everything else as false.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "yes", "true", "1", "on":
		return true
	default:
		return false
	}
}

// colorNames maps common color names to RGBA values.
var colorNames = map[string]color.RGBA{
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"red":     {R: 255, G: 0, B: 0, A: 255},
	"green":   {R: 0, G: 255, B: 0, A: 255},
	"blue":    {R: 0, G: 0, B: 255, A: 255},
	"yellow":  {R: 255, G: 255, B: 0, A: 255},
	"cyan":    {R: 0, G: 255, B: 255, A: 255},
	"magenta": {R: 255, G: 0, B: 255, A: 255},
	"grey":    {R: 128, G: 128, B: 128, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"orange":  {R: 255, G: 165, B: 0, A: 255},
}

// parseColor parses a color from a name or hex value.
// Hex values can be in format: RRGGBB or #RRGGBB
func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if c, ok := colorNames[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %s", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// rgbFromInts builds an opaque color from a [r, g, b] triple.
func rgbFromInts(vals []int) (color.RGBA, error) {
	if len(vals) != 3 {
		return color.RGBA{}, fmt.Errorf("rgb needs 3 components, got %d", len(vals))
	}
	for i, v := range vals {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("rgb component %d out of range 0-255: %d", i, v)
		}
	}
	return color.RGBA{R: uint8(vals[0]), G: uint8(vals[1]), B: uint8(vals[2]), A: 255}, nil
}
