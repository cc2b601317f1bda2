package bongo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/opd-ai/go-bongo/internal/config"
)

// Configuration format constants for use with NewFromReader.
const (
	// FormatYAML indicates a YAML configuration.
	FormatYAML = config.FormatYAML
	// FormatJSON indicates a JSON configuration, including config.json
	// files with numeric key codes.
	FormatJSON = config.FormatJSON
	// FormatLua indicates a Lua configuration assigning bongo.config.
	FormatLua = config.FormatLua
)

// Bongo is an embeddable Bongo Cat overlay.
// Its methods are safe for concurrent use from multiple goroutines.
type Bongo interface {
	// Run opens the overlay window and blocks until it is closed or ctx is
	// cancelled. The window is decorated (shape and opacity) once it is
	// mapped. Run must be called from the main goroutine, and ebiten allows
	// only one game per process.
	Run(ctx context.Context) error

	// ReloadConfig re-reads the configuration and applies sprites, key
	// bindings and the clear color to the running window. Window size, shape
	// and opacity are only applied at startup. On error the previous
	// configuration stays active.
	ReloadConfig() error

	// IsRunning returns true while the overlay window is open.
	IsRunning() bool

	// Status returns detailed status information about the instance.
	Status() Status

	// SetErrorHandler registers a callback for runtime errors.
	// The handler is invoked asynchronously and recovered if it panics.
	SetErrorHandler(handler ErrorHandler)

	// SetEventHandler registers a callback for lifecycle events.
	SetEventHandler(handler EventHandler)

	// Metrics returns the metrics collector for this instance.
	Metrics() *Metrics

	// WriteMask writes the region the window will be clipped to, as a
	// binary PBM image at the window size. Visible pixels are black.
	WriteMask(w io.Writer) error
}

// New creates a Bongo instance from a configuration file on disk.
// The file may be YAML, JSON or Lua; relative sprite paths resolve against
// the file's directory.
//
// Example:
//
//	b, err := bongo.New("/home/user/.config/go-bongo/config.yaml", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := b.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
func New(configPath string, opts *Options) (Bongo, error) {
	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseFile(configPath)
	}
	b, err := newBongo(configPath, loader, opts)
	if err != nil {
		return nil, err
	}
	b.configPath = configPath
	return b, nil
}

// NewFromFS creates a Bongo instance from a configuration file in fsys.
// Sprite paths are resolved on the host filesystem relative to the working
// directory, so embedded configs should use absolute sprite paths or ship
// the sprites next to the binary.
//
// Example:
//
//	//go:embed configs/*
//	var configFS embed.FS
//
//	b, err := bongo.NewFromFS(configFS, "configs/bongo.yaml", nil)
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (Bongo, error) {
	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseFromFS(fsys, configPath)
	}
	return newBongo("embedded:"+configPath, loader, opts)
}

// NewFromReader creates a Bongo instance from configuration content.
// The format parameter is FormatYAML, FormatJSON or FormatLua. The content
// is read once and kept for ReloadConfig.
//
// Example:
//
//	cfg := strings.NewReader(`bongo.config = { window = { fps = 30 } }`)
//	b, err := bongo.NewFromReader(cfg, bongo.FormatLua, nil)
func NewFromReader(r io.Reader, format string, opts *Options) (Bongo, error) {
	switch format {
	case FormatYAML, FormatJSON, FormatLua:
	default:
		return nil, fmt.Errorf("invalid format: %s (expected '%s', '%s' or '%s')", format, FormatYAML, FormatJSON, FormatLua)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.ParseReader(bytes.NewReader(content), format)
	}
	return newBongo("reader", loader, opts)
}

// newBongo performs the first load and builds the instance.
func newBongo(source string, parse func() (*config.Config, error), opts *Options) (*bongoImpl, error) {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}

	b := newImpl(*opts)
	b.configSource = source
	b.configLoader = validated(parse)

	cfg, err := loadWithRetry(b.configLoader, b.opts.LoadAttempts, b.opts.LoadRetryDelay, b.logger)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	b.cfg = cfg
	return b, nil
}

// validated wraps parse so every load also passes validation.
func validated(parse func() (*config.Config, error)) func() (*config.Config, error) {
	return func() (*config.Config, error) {
		cfg, err := parse()
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
}

// loadWithRetry calls load up to attempts times, sleeping delay between
// failures, and returns the last error.
func loadWithRetry(load func() (*config.Config, error), attempts int, delay time.Duration, logger Logger) (*config.Config, error) {
	if attempts < 1 {
		attempts = DefaultLoadAttempts
	}
	if delay <= 0 {
		delay = DefaultLoadRetryDelay
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		cfg, err := load()
		if err == nil {
			return cfg, nil
		}
		lastErr = err
		if i < attempts {
			logger.Warn("config load failed, retrying", "attempt", i, "of", attempts, "error", err)
			time.Sleep(delay)
		}
	}
	return nil, lastErr
}
