package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the on-disk YAML/JSON layout. Pointer fields tell an
// absent key apart from a zero value so defaults survive partial files.
type fileConfig struct {
	Window     *fileWindow     `yaml:"window,omitempty"`
	Decoration *fileDecoration `yaml:"decoration,omitempty"`
	Sprites    *fileSprites    `yaml:"sprites,omitempty"`
	Osu        *fileKeys       `yaml:"osu,omitempty"`
	Keys       *fileKeys       `yaml:"keys,omitempty"`
}

type fileWindow struct {
	Title     *string `yaml:"title,omitempty"`
	Width     *int    `yaml:"width,omitempty"`
	Height    *int    `yaml:"height,omitempty"`
	Alignment *string `yaml:"alignment,omitempty"`
	GapX      *int    `yaml:"gap_x,omitempty"`
	GapY      *int    `yaml:"gap_y,omitempty"`
	Floating  *bool   `yaml:"floating,omitempty"`
	FPS       *int    `yaml:"fps,omitempty"`
}

type fileDecoration struct {
	Transparent     *bool   `yaml:"transparent,omitempty"`
	Mask            *string `yaml:"mask,omitempty"`
	Opacity         *int    `yaml:"opacity,omitempty"`
	RGB             []int   `yaml:"rgb,omitempty"`
	Color           *string `yaml:"color,omitempty"`
	LeftHanded      *bool   `yaml:"left_handed,omitempty"`
	LeftHandedCamel *bool   `yaml:"leftHanded,omitempty"`
	SkipTaskbar     *bool   `yaml:"skip_taskbar,omitempty"`
	SkipPager       *bool   `yaml:"skip_pager,omitempty"`
}

type fileSprites struct {
	Dir        *string `yaml:"dir,omitempty"`
	Background *string `yaml:"background,omitempty"`
	LeftUp     *string `yaml:"left_up,omitempty"`
	LeftDown   *string `yaml:"left_down,omitempty"`
	RightUp    *string `yaml:"right_up,omitempty"`
	RightDown  *string `yaml:"right_down,omitempty"`
}

type fileKeys struct {
	Key1  keyList `yaml:"key1,omitempty"`
	Key2  keyList `yaml:"key2,omitempty"`
	Left  keyList `yaml:"left,omitempty"`
	Right keyList `yaml:"right,omitempty"`
}

// keyList accepts a single key or a sequence of keys. Integer entries are
// keysyms and are kept as their decimal text for the input package.
type keyList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *keyList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*k = keyList{node.Value}
		return nil
	case yaml.SequenceNode:
		out := make(keyList, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: key must be a string or number", item.Line)
			}
			out = append(out, item.Value)
		}
		*k = out
		return nil
	default:
		return fmt.Errorf("line %d: keys must be a key or a list of keys", node.Line)
	}
}

// YAMLConfigParser parses YAML configuration files. Since JSON is a subset of
// YAML it also reads the JSON config layout.
type YAMLConfigParser struct{}

// NewYAMLConfigParser creates a new YAMLConfigParser.
func NewYAMLConfigParser() *YAMLConfigParser {
	return &YAMLConfigParser{}
}

// Parse parses YAML or JSON content into a Config seeded with defaults.
func (p *YAMLConfigParser) Parse(content []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	cfg := DefaultConfig()
	if err := fc.apply(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) error {
	if w := fc.Window; w != nil {
		setString(&cfg.Window.Title, w.Title)
		setInt(&cfg.Window.Width, w.Width)
		setInt(&cfg.Window.Height, w.Height)
		setInt(&cfg.Window.GapX, w.GapX)
		setInt(&cfg.Window.GapY, w.GapY)
		setInt(&cfg.Window.FrameRate, w.FPS)
		if w.Floating != nil {
			cfg.Window.Floating = *w.Floating
		}
		if w.Alignment != nil {
			a, err := ParseAlignment(*w.Alignment)
			if err != nil {
				return fmt.Errorf("window.alignment: %w", err)
			}
			cfg.Window.Alignment = a
		}
	}

	if d := fc.Decoration; d != nil {
		if d.Transparent != nil {
			cfg.Decoration.Transparent = *d.Transparent
		}
		setString(&cfg.Decoration.Mask, d.Mask)
		setInt(&cfg.Decoration.Opacity, d.Opacity)
		if d.RGB != nil {
			c, err := rgbFromInts(d.RGB)
			if err != nil {
				return fmt.Errorf("decoration.rgb: %w", err)
			}
			cfg.Decoration.Background = c
		}
		if d.Color != nil {
			c, err := parseColor(*d.Color)
			if err != nil {
				return fmt.Errorf("decoration.color: %w", err)
			}
			cfg.Decoration.Background = c
		}
		if d.LeftHandedCamel != nil {
			cfg.Decoration.LeftHanded = *d.LeftHandedCamel
		}
		if d.LeftHanded != nil {
			cfg.Decoration.LeftHanded = *d.LeftHanded
		}
		setBool(&cfg.Decoration.SkipTaskbar, d.SkipTaskbar)
		setBool(&cfg.Decoration.SkipPager, d.SkipPager)
	}

	if s := fc.Sprites; s != nil {
		setString(&cfg.Sprites.Dir, s.Dir)
		setString(&cfg.Sprites.Background, s.Background)
		setString(&cfg.Sprites.LeftUp, s.LeftUp)
		setString(&cfg.Sprites.LeftDown, s.LeftDown)
		setString(&cfg.Sprites.RightUp, s.RightUp)
		setString(&cfg.Sprites.RightDown, s.RightDown)
	}

	for _, k := range []*fileKeys{fc.Osu, fc.Keys} {
		if k == nil {
			continue
		}
		if keys := firstNonEmpty(k.Left, k.Key1); keys != nil {
			cfg.Keys.Left = keys
		}
		if keys := firstNonEmpty(k.Right, k.Key2); keys != nil {
			cfg.Keys.Right = keys
		}
	}
	return nil
}

// MarshalYAML renders cfg in the file layout read by YAMLConfigParser.
func MarshalYAML(cfg *Config) ([]byte, error) {
	align := cfg.Window.Alignment.String()
	bg := cfg.Decoration.Background
	fc := fileConfig{
		Window: &fileWindow{
			Title:     &cfg.Window.Title,
			Width:     &cfg.Window.Width,
			Height:    &cfg.Window.Height,
			Alignment: &align,
			GapX:      &cfg.Window.GapX,
			GapY:      &cfg.Window.GapY,
			Floating:  &cfg.Window.Floating,
			FPS:       &cfg.Window.FrameRate,
		},
		Decoration: &fileDecoration{
			Transparent: &cfg.Decoration.Transparent,
			Mask:        &cfg.Decoration.Mask,
			Opacity:     &cfg.Decoration.Opacity,
			RGB:         []int{int(bg.R), int(bg.G), int(bg.B)},
			LeftHanded:  &cfg.Decoration.LeftHanded,
			SkipTaskbar: &cfg.Decoration.SkipTaskbar,
			SkipPager:   &cfg.Decoration.SkipPager,
		},
		Sprites: &fileSprites{
			Dir:        &cfg.Sprites.Dir,
			Background: &cfg.Sprites.Background,
			LeftUp:     &cfg.Sprites.LeftUp,
			LeftDown:   &cfg.Sprites.LeftDown,
			RightUp:    &cfg.Sprites.RightUp,
			RightDown:  &cfg.Sprites.RightDown,
		},
		Osu: &fileKeys{Key1: cfg.Keys.Left, Key2: cfg.Keys.Right},
	}
	return yaml.Marshal(&fc)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func firstNonEmpty(lists ...keyList) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return []string(l)
		}
	}
	return nil
}
