package config

import (
	"os"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	// Set up test environment variables
	os.Setenv("TEST_BONGO_VAR", "test_value")
	os.Setenv("TEST_BONGO_FONT", "Bongo Theme")
	os.Setenv("TEST_BONGO_PATH", "/home/user/.config")
	defer func() {
		os.Unsetenv("TEST_BONGO_VAR")
		os.Unsetenv("TEST_BONGO_FONT")
		os.Unsetenv("TEST_BONGO_PATH")
	}()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no variables",
			input:    "plain text without variables",
			expected: "plain text without variables",
		},
		{
			name:     "simple ${VAR} format",
			input:    "prefix ${TEST_BONGO_VAR} suffix",
			expected: "prefix test_value suffix",
		},
		{
			name:     "simple $VAR format",
			input:    "prefix $TEST_BONGO_VAR suffix",
			expected: "prefix test_value suffix",
		},
		{
			name:     "unset variable becomes empty",
			input:    "prefix ${UNSET_VAR_12345} suffix",
			expected: "prefix  suffix",
		},
		{
			name:     "unset variable with default",
			input:    "prefix ${UNSET_VAR_12345:-default_value} suffix",
			expected: "prefix default_value suffix",
		},
		{
			name:     "set variable ignores default",
			input:    "theme: ${TEST_BONGO_FONT:-fallback}",
			expected: "theme: Bongo Theme",
		},
		{
			name:     "empty default",
			input:    "${UNSET_VAR_12345:-}",
			expected: "",
		},
		{
			name:     "multiple variables",
			input:    "${TEST_BONGO_PATH}/config and ${TEST_BONGO_FONT}",
			expected: "/home/user/.config/config and Bongo Theme",
		},
		{
			name:     "mixed formats",
			input:    "$TEST_BONGO_VAR and ${TEST_BONGO_FONT}",
			expected: "test_value and Bongo Theme",
		},
		{
			name:     "adjacent variables",
			input:    "${TEST_BONGO_PATH}/${TEST_BONGO_VAR}",
			expected: "/home/user/.config/test_value",
		},
		{
			name:     "variable at start",
			input:    "${TEST_BONGO_VAR} at start",
			expected: "test_value at start",
		},
		{
			name:     "variable at end",
			input:    "at end ${TEST_BONGO_VAR}",
			expected: "at end test_value",
		},
		{
			name:     "preserve non-matching patterns",
			input:    "literal ${cpu} and ${mem}",
			expected: "literal  and ", // cpu and mem are not env vars
		},
		{
			name:     "default with special chars",
			input:    "${UNSET:-/path/to/file.txt}",
			expected: "/path/to/file.txt",
		},
		{
			name:     "default with colon",
			input:    "${UNSET:-value:with:colons}",
			expected: "value:with:colons",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandEnv(tt.input)
			if result != tt.expected {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExpandEnvConfig(t *testing.T) {
	t.Setenv("BONGO_TEST_THEME", "/opt/bongo/classic")
	t.Setenv("BONGO_TEST_USER", "alice")

	cfg := DefaultConfig()
	cfg.Window.Title = "Bongo Cat ($BONGO_TEST_USER)"
	cfg.Sprites.Dir = "${BONGO_TEST_THEME}/img"
	cfg.Sprites.LeftUp = "${BONGO_TEST_UNSET_12345:-left_up.png}"
	cfg.Decoration.Mask = "${BONGO_TEST_THEME}/mask.png"

	ExpandEnvConfig(&cfg)

	if cfg.Window.Title != "Bongo Cat (alice)" {
		t.Errorf("Title = %q", cfg.Window.Title)
	}
	if cfg.Sprites.Dir != "/opt/bongo/classic/img" {
		t.Errorf("Sprites.Dir = %q", cfg.Sprites.Dir)
	}
	if cfg.Sprites.LeftUp != "left_up.png" {
		t.Errorf("Sprites.LeftUp = %q", cfg.Sprites.LeftUp)
	}
	if cfg.Sprites.Background != "bg.png" {
		t.Errorf("Sprites.Background = %q, want untouched", cfg.Sprites.Background)
	}
	if cfg.Decoration.Mask != "/opt/bongo/classic/mask.png" {
		t.Errorf("Decoration.Mask = %q", cfg.Decoration.Mask)
	}
}

func TestExpandEnvConfigNil(t *testing.T) {
	// Should not panic on nil config
	ExpandEnvConfig(nil)
}

func TestExpandEnvConfigWithOptions(t *testing.T) {
	t.Setenv("OPT_TEST_VAR", "expanded")

	newCfg := func() *Config {
		cfg := DefaultConfig()
		cfg.Window.Title = "${OPT_TEST_VAR}"
		cfg.Sprites.Dir = "${OPT_TEST_VAR}"
		cfg.Decoration.Mask = "${OPT_TEST_VAR}"
		return &cfg
	}

	tests := []struct {
		name                         string
		opts                         []EnvConfigOption
		wantTitle, wantDir, wantMask string
	}{
		{"all enabled", nil, "expanded", "expanded", "expanded"},
		{"disable title", []EnvConfigOption{WithExpandTitle(false)}, "${OPT_TEST_VAR}", "expanded", "expanded"},
		{"disable sprites", []EnvConfigOption{WithExpandSprites(false)}, "expanded", "${OPT_TEST_VAR}", "expanded"},
		{"disable mask", []EnvConfigOption{WithExpandMask(false)}, "expanded", "expanded", "${OPT_TEST_VAR}"},
		{
			"multiple options",
			[]EnvConfigOption{WithExpandTitle(false), WithExpandSprites(false), WithExpandMask(false)},
			"${OPT_TEST_VAR}", "${OPT_TEST_VAR}", "${OPT_TEST_VAR}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newCfg()
			ExpandEnvConfigWithOptions(cfg, tt.opts...)
			if cfg.Window.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", cfg.Window.Title, tt.wantTitle)
			}
			if cfg.Sprites.Dir != tt.wantDir {
				t.Errorf("Sprites.Dir = %q, want %q", cfg.Sprites.Dir, tt.wantDir)
			}
			if cfg.Decoration.Mask != tt.wantMask {
				t.Errorf("Decoration.Mask = %q, want %q", cfg.Decoration.Mask, tt.wantMask)
			}
		})
	}
}

func TestExpandEnvConfigWithOptionsNil(t *testing.T) {
	// Should not panic on nil config
	ExpandEnvConfigWithOptions(nil)
	ExpandEnvConfigWithOptions(nil, WithExpandTitle(true))
}

func TestExpandEnvEmptyString(t *testing.T) {
	result := ExpandEnv("")
	if result != "" {
		t.Errorf("ExpandEnv(%q) = %q, want empty string", "", result)
	}
}

func TestExpandEnvVariableNameValidation(t *testing.T) {
	os.Setenv("VALID_VAR", "valid")
	defer os.Unsetenv("VALID_VAR")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "valid variable name",
			input:    "$VALID_VAR",
			expected: "valid",
		},
		{
			name:     "variable with underscore",
			input:    "$VALID_VAR",
			expected: "valid",
		},
		{
			name:     "variable with numbers",
			input:    "${VALID_VAR}",
			expected: "valid",
		},
		{
			name:     "variable cannot start with number",
			input:    "$123VAR",
			expected: "$123VAR", // not matched as variable
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandEnv(tt.input)
			if result != tt.expected {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
