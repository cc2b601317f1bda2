// Package config provides configuration parsing for go-bongo.
// This file implements environment variable expansion support for configuration values.
package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches environment variable references in configuration values.
// Supports formats:
//   - ${VAR_NAME} - standard shell-like format
//   - ${VAR_NAME:-default} - with default value if unset or empty
//   - $VAR_NAME - simple format (word characters only)
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv expands environment variable references in a string.
// It supports the following formats:
//   - ${VAR_NAME} - replaced with value of VAR_NAME
//   - ${VAR_NAME:-default} - replaced with VAR_NAME's value, or "default" if unset/empty
//   - $VAR_NAME - replaced with value of VAR_NAME (simple format)
//
// Unknown or unset variables without defaults are replaced with empty string.
func ExpandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Check for ${VAR} or ${VAR:-default} format
		if strings.HasPrefix(match, "${") && strings.HasSuffix(match, "}") {
			inner := match[2 : len(match)-1]

			// Check for default value syntax: VAR:-default
			if idx := strings.Index(inner, ":-"); idx >= 0 {
				varName := inner[:idx]
				defaultVal := inner[idx+2:]
				if val := os.Getenv(varName); val != "" {
					return val
				}
				return defaultVal
			}

			// Simple variable reference
			return os.Getenv(inner)
		}

		// Handle $VAR format (simple variable)
		if strings.HasPrefix(match, "$") {
			varName := match[1:]
			return os.Getenv(varName)
		}

		return match
	})
}

// ExpandEnvConfig expands environment variables in all path-like configuration
// values. It modifies the Config in place, expanding ${VAR} and $VAR patterns in:
//   - Window title
//   - Sprite directory and file names
//   - Mask path
func ExpandEnvConfig(cfg *Config) {
	ExpandEnvConfigWithOptions(cfg)
}

// EnvConfigOption is a functional option for environment variable expansion.
type EnvConfigOption func(*envConfigOptions)

type envConfigOptions struct {
	expandTitle   bool
	expandSprites bool
	expandMask    bool
}

// defaultEnvConfigOptions returns the default options (all expansion enabled).
func defaultEnvConfigOptions() *envConfigOptions {
	return &envConfigOptions{
		expandTitle:   true,
		expandSprites: true,
		expandMask:    true,
	}
}

// WithExpandTitle controls whether the window title should be expanded.
func WithExpandTitle(expand bool) EnvConfigOption {
	return func(o *envConfigOptions) {
		o.expandTitle = expand
	}
}

// WithExpandSprites controls whether sprite paths should be expanded.
func WithExpandSprites(expand bool) EnvConfigOption {
	return func(o *envConfigOptions) {
		o.expandSprites = expand
	}
}

// WithExpandMask controls whether the mask path should be expanded.
func WithExpandMask(expand bool) EnvConfigOption {
	return func(o *envConfigOptions) {
		o.expandMask = expand
	}
}

// ExpandEnvConfigWithOptions expands environment variables with specific options.
func ExpandEnvConfigWithOptions(cfg *Config, opts ...EnvConfigOption) {
	if cfg == nil {
		return
	}

	options := defaultEnvConfigOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.expandTitle {
		cfg.Window.Title = ExpandEnv(cfg.Window.Title)
	}

	if options.expandSprites {
		s := &cfg.Sprites
		for _, p := range []*string{&s.Dir, &s.Background, &s.LeftUp, &s.LeftDown, &s.RightUp, &s.RightDown} {
			*p = ExpandEnv(*p)
		}
	}

	if options.expandMask {
		cfg.Decoration.Mask = ExpandEnv(cfg.Decoration.Mask)
	}
}
