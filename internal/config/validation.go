// Package config provides configuration parsing and validation for go-bongo.
// This file implements validation for configuration values and key bindings.
package config

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-bongo/internal/input"
)

// Limits enforced by the validator.
const (
	// MaxFrameRate is the highest accepted update rate.
	MaxFrameRate = 240
	// MaxWindowSize bounds width and height; the X11 SHAPE request encodes
	// coordinates as int16.
	MaxWindowSize = 0x7FFF
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues (e.g., an invisible window).
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator provides configuration validation.
type Validator struct {
	// strictMode turns warnings into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings are errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateWindow(&cfg.Window, result)
	v.validateDecoration(&cfg.Decoration, result)
	v.validateSprites(&cfg.Sprites, result)
	v.validateKeys(&cfg.Keys, result)

	if v.strictMode {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	return result
}

func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Width <= 0 || wc.Width > MaxWindowSize {
		result.AddError("window.width", fmt.Sprintf("must be between 1 and %d, got %d", MaxWindowSize, wc.Width))
	}
	if wc.Height <= 0 || wc.Height > MaxWindowSize {
		result.AddError("window.height", fmt.Sprintf("must be between 1 and %d, got %d", MaxWindowSize, wc.Height))
	}
	if wc.FrameRate <= 0 || wc.FrameRate > MaxFrameRate {
		result.AddError("window.fps", fmt.Sprintf("must be between 1 and %d, got %d", MaxFrameRate, wc.FrameRate))
	}
	if wc.Alignment < AlignmentTopLeft || wc.Alignment > AlignmentBottomRight {
		result.AddError("window.alignment", fmt.Sprintf("invalid alignment value %d", int(wc.Alignment)))
	}
	if strings.TrimSpace(wc.Title) == "" {
		result.AddWarning("window.title", "empty title; the window can only be found by process id")
	}
}

func (v *Validator) validateDecoration(dc *DecorationConfig, result *ValidationResult) {
	if dc.Opacity < 0 || dc.Opacity > 255 {
		result.AddError("decoration.opacity", fmt.Sprintf("must be between 0 and 255, got %d", dc.Opacity))
	} else if dc.Opacity == 0 {
		result.AddWarning("decoration.opacity", "opacity 0 makes the window invisible")
	}
}

func (v *Validator) validateSprites(sc *SpriteConfig, result *ValidationResult) {
	fields := []struct {
		name  string
		value string
	}{
		{"sprites.background", sc.Background},
		{"sprites.left_up", sc.LeftUp},
		{"sprites.left_down", sc.LeftDown},
		{"sprites.right_up", sc.RightUp},
		{"sprites.right_down", sc.RightDown},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			result.AddError(f.name, "must not be empty")
		}
	}
}

func (v *Validator) validateKeys(kc *KeyConfig, result *ValidationResult) {
	groups := []struct {
		field string
		names []string
	}{
		{"keys.left", kc.Left},
		{"keys.right", kc.Right},
	}
	for _, g := range groups {
		if len(g.names) == 0 {
			result.AddWarning(g.field, "no keys bound; the paw never moves")
			continue
		}
		for i, name := range g.names {
			if _, err := input.Lookup(name); err != nil {
				result.AddError(fmt.Sprintf("%s[%d]", g.field, i), err.Error())
			}
		}
	}
}

// ValidateConfig is a convenience function to validate a Config with default settings.
// Returns nil if the config is valid, or an error describing validation failures.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	validator := NewValidator()
	result := validator.Validate(cfg)
	return result.Error()
}

// ValidateConfigStrict validates a Config with strict mode enabled.
// Warnings are treated as errors.
func ValidateConfigStrict(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	validator := NewValidator().WithStrictMode(true)
	result := validator.Validate(cfg)
	return result.Error()
}
