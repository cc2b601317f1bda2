// Package config provides configuration parsing for go-bongo.
// This file implements the unified parser that auto-detects the configuration format.

package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// Format names accepted by ParseReader.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatLua  = "lua"
)

// Parser provides a unified interface for parsing go-bongo configuration files.
// It automatically detects whether a file uses YAML/JSON or Lua format.
type Parser struct {
	yamlParser *YAMLConfigParser
	luaParser  *LuaConfigParser
}

// NewParser creates a new Parser that can handle both YAML and Lua configurations.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Parser{
		yamlParser: NewYAMLConfigParser(),
		luaParser:  luaParser,
	}, nil
}

// ParseFile reads and parses a configuration file, auto-detecting the format.
// Relative sprite paths in the result resolve against the file's directory.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		cfg.BaseDir = abs
	} else {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Parse parses configuration content, auto-detecting the format.
// It uses the presence of "bongo.config = " pattern to detect Lua format.
func (p *Parser) Parse(content []byte) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if isLuaConfig(content) {
		cfg, err = p.luaParser.Parse(content)
	} else {
		cfg, err = p.yamlParser.Parse(content)
	}
	if err != nil {
		return nil, err
	}
	ExpandEnvConfig(cfg)
	return cfg, nil
}

// luaConfigPattern matches "bongo.config" followed by optional whitespace and "="
// at the start of a line (not inside a comment).
var luaConfigPattern = regexp.MustCompile(`(?m)^\s*bongo\.config\s*=`)

func isLuaConfig(content []byte) bool {
	return luaConfigPattern.Match(content)
}

// ParseFromFS reads and parses a configuration file from an embedded filesystem.
// It auto-detects the format (YAML or Lua) based on content. BaseDir is left
// empty since fs.FS paths are not host paths.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}

	return p.Parse(content)
}

// ParseReader parses configuration from an io.Reader.
// The format parameter must be "yaml", "json" or "lua".
func (p *Parser) ParseReader(r io.Reader, format string) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg *Config
	switch format {
	case FormatLua:
		cfg, err = p.luaParser.Parse(content)
	case FormatYAML, FormatJSON:
		cfg, err = p.yamlParser.Parse(content)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected 'yaml', 'json' or 'lua')", format)
	}
	if err != nil {
		return nil, err
	}
	ExpandEnvConfig(cfg)
	return cfg, nil
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}
