package config

import "image/color"

// Default values for configuration options.
const (
	// DefaultTitle is the default window title.
	DefaultTitle = "Bongo Cat"
	// DefaultWidth is the default window width in pixels.
	DefaultWidth = 612
	// DefaultHeight is the default window height in pixels.
	DefaultHeight = 354
	// DefaultFrameRate is the default number of updates per second.
	DefaultFrameRate = 60
	// DefaultOpacity leaves the window fully opaque.
	DefaultOpacity = 255
	// DefaultSpriteDir is the default sprite directory, relative to the config.
	DefaultSpriteDir = "img"
)

// DefaultBackground is the default clear color (opaque white).
var DefaultBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// DefaultConfig returns a Config with sensible default values.
// The cat sits in the bottom-right corner and slaps on Z and X, the osu! keys.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     DefaultTitle,
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Alignment: AlignmentBottomRight,
			Floating:  true,
			FrameRate: DefaultFrameRate,
		},
		Decoration: DecorationConfig{
			Transparent: false,
			Opacity:     DefaultOpacity,
			Background:  DefaultBackground,
			SkipTaskbar: true,
			SkipPager:   true,
		},
		Sprites: SpriteConfig{
			Dir:        DefaultSpriteDir,
			Background: "bg.png",
			LeftUp:     "left_up.png",
			LeftDown:   "left_down.png",
			RightUp:    "right_up.png",
			RightDown:  "right_down.png",
		},
		Keys: KeyConfig{
			Left:  []string{"z"},
			Right: []string{"x"},
		},
	}
}

// DefaultFileContent is written by the -init flag of bongo-go.
const DefaultFileContent = `# go-bongo configuration.
window:
  title: Bongo Cat
  width: 612
  height: 354
  alignment: bottom_right
  gap_x: 0
  gap_y: 0
  floating: true
  fps: 60

decoration:
  # Clip the window to the opaque pixels of the mask (or background) image.
  transparent: false
  mask: ""
  # Window opacity 0-255; needs a compositor.
  opacity: 255
  rgb: [255, 255, 255]
  left_handed: false
  # Keep the cat out of the taskbar and the workspace pager.
  skip_taskbar: true
  skip_pager: true

sprites:
  dir: img
  background: bg.png
  left_up: left_up.png
  left_down: left_down.png
  right_up: right_up.png
  right_down: right_down.png

osu:
  key1: [z]
  key2: [x]
`
