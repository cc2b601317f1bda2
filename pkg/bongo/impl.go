package bongo

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-bongo/internal/config"
	"github.com/opd-ai/go-bongo/internal/input"
	"github.com/opd-ai/go-bongo/internal/mask"
	"github.com/opd-ai/go-bongo/internal/render"
	"github.com/opd-ai/go-bongo/internal/xwin"
)

// bongoImpl is the private implementation of the Bongo interface.
type bongoImpl struct {
	// Configuration
	cfg          *config.Config
	opts         Options
	configSource string
	configPath   string // disk path, empty for FS and reader configs
	configLoader func() (*config.Config, error)

	// Components
	cache   *render.ImageCache
	game    *render.Game
	source  input.Source
	sprites *render.SpriteSet
	metrics *Metrics
	logger  Logger

	// Platform hooks, replaced in tests.
	newSource   func() input.Source
	openDisplay func() (xwin.Display, error)

	// State
	running    atomic.Bool
	startTime  time.Time
	presses    atomic.Uint64
	lastError  atomic.Value // stores error
	decoration decoration

	// Handlers
	errorHandler ErrorHandler
	eventHandler EventHandler

	mu sync.RWMutex
}

// Verify interface implementation at compile time.
var _ Bongo = (*bongoImpl)(nil)

func newImpl(opts Options) *bongoImpl {
	b := &bongoImpl{
		opts:        opts,
		cache:       render.NewImageCache(),
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		newSource:   input.NewSource,
		openDisplay: xwin.Open,
	}
	if b.metrics == nil {
		b.metrics = DefaultMetrics()
	}
	if b.logger == nil {
		b.logger = NopLogger()
	}
	return b
}

// Run opens the overlay window and blocks until it closes.
func (b *bongoImpl) Run(ctx context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		return fmt.Errorf("bongo instance already running")
	}
	defer b.running.Store(false)

	b.mu.RLock()
	cfg := b.cfg
	b.mu.RUnlock()
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	rc := b.renderConfig(cfg)
	left, right, err := pawKeys(cfg)
	if err != nil {
		return err
	}
	frames, err := render.LoadFrames(b.cache, spritePaths(cfg), rc.Width, rc.Height)
	if err != nil {
		return err
	}

	src := b.newSource()
	defer src.Close()

	game := render.NewGame(rc)
	game.SetContext(ctx)
	game.SetErrorHandler(b.inputErrorHandler())
	game.SetInput(src, left, right)
	game.SetPressFunc(b.recordPress)
	sprites := render.NewSpriteSet(frames)
	game.SetSprites(sprites)
	var dc *decorator
	if !b.opts.NoDecoration {
		dc = b.newDecorator(cfg, rc)
		game.SetReadyFunc(dc.ready)
	}

	b.mu.Lock()
	b.game = game
	b.source = src
	b.sprites = sprites
	b.startTime = time.Now()
	b.decoration = decoration{}
	b.mu.Unlock()

	b.metrics.IncrementStarts()
	b.metrics.SetRunning(true)
	b.metrics.AttachFrames(game.Metrics())

	if stop := b.startWatcher(cfg); stop != nil {
		defer stop()
	}

	b.logger.Info("overlay starting", "config", b.configSource, "size", fmt.Sprintf("%dx%d", rc.Width, rc.Height))
	b.emitEvent(EventStarted, "Overlay started")

	runErr := game.Run()
	if dc != nil {
		dc.closeDisplay()
	}

	b.mu.Lock()
	sprites = b.sprites
	b.game, b.source, b.sprites = nil, nil, nil
	b.mu.Unlock()
	sprites.Deallocate()

	b.metrics.SetRunning(false)
	b.metrics.IncrementStops()
	b.emitEvent(EventStopped, "Overlay stopped")

	if runErr != nil {
		wrapped := fmt.Errorf("render loop error: %w", runErr)
		b.notifyError(wrapped)
		return wrapped
	}
	return nil
}

// renderConfig maps the loaded configuration onto the render window.
func (b *bongoImpl) renderConfig(cfg *config.Config) render.Config {
	rc := render.DefaultConfig()
	rc.Width = cfg.Window.Width
	rc.Height = cfg.Window.Height
	rc.Title = cfg.Window.Title
	if b.opts.WindowTitle != "" {
		rc.Title = b.opts.WindowTitle
	}
	rc.TPS = cfg.Window.FrameRate
	if b.opts.FrameRate > 0 {
		rc.TPS = b.opts.FrameRate
	}
	rc.Background = cfg.Decoration.Background
	rc.ScreenTransparent = cfg.Decoration.Background.A < 0xFF
	rc.Floating = cfg.Window.Floating
	rc.Position = cfg.Window.Position
	return rc
}

func spritePaths(cfg *config.Config) render.SpritePaths {
	return render.SpritePaths{
		Background: cfg.ResolvePath(cfg.Sprites.Background),
		LeftUp:     cfg.ResolvePath(cfg.Sprites.LeftUp),
		LeftDown:   cfg.ResolvePath(cfg.Sprites.LeftDown),
		RightUp:    cfg.ResolvePath(cfg.Sprites.RightUp),
		RightDown:  cfg.ResolvePath(cfg.Sprites.RightDown),
	}
}

// pawKeys resolves the key names driving each paw, honoring left_handed.
func pawKeys(cfg *config.Config) (left, right []input.Key, err error) {
	leftNames, rightNames := cfg.PawKeys()
	if left, err = input.ParseKeys(leftNames); err != nil {
		return nil, nil, fmt.Errorf("left paw keys: %w", err)
	}
	if right, err = input.ParseKeys(rightNames); err != nil {
		return nil, nil, fmt.Errorf("right paw keys: %w", err)
	}
	return left, right, nil
}

// WriteMask implements Bongo.
func (b *bongoImpl) WriteMask(w io.Writer) error {
	b.mu.RLock()
	cfg := b.cfg
	b.mu.RUnlock()

	rc := b.renderConfig(cfg)
	img, err := b.maskLoader(cfg, rc.Width, rc.Height)()
	if err != nil {
		return fmt.Errorf("load mask: %w", err)
	}
	m, err := mask.FromImage(img)
	if err != nil {
		return fmt.Errorf("build mask: %w", err)
	}
	return m.WritePBM(w)
}

// maskLoader returns a loader for the shape image at the window size.
func (b *bongoImpl) maskLoader(cfg *config.Config, w, h int) func() (image.Image, error) {
	path := cfg.MaskPath()
	return func() (image.Image, error) {
		img, err := b.cache.Load(path)
		if err != nil {
			return nil, err
		}
		return render.ScaleMask(img, w, h), nil
	}
}

func (b *bongoImpl) newDecorator(cfg *config.Config, rc render.Config) *decorator {
	return &decorator{
		open:        b.openDisplay,
		pid:         os.Getpid(),
		title:       rc.Title,
		shape:       cfg.Decoration.Transparent,
		mask:        b.maskLoader(cfg, rc.Width, rc.Height),
		opacity:     cfg.OpacityByte(),
		skipTaskbar: cfg.Decoration.SkipTaskbar,
		skipPager:   cfg.Decoration.SkipPager,
		logger:      b.logger,
		onFail: func(step string, err error) {
			b.metrics.IncrementDecorationFailures()
			b.logger.Warn("window decoration step failed", "step", step, "error", err)
		},
		onDone: func(res decoration) {
			b.mu.Lock()
			b.decoration = res
			b.mu.Unlock()
			b.emitEvent(EventDecorated, fmt.Sprintf("shaped=%t opacity=%t hinted=%t", res.Shaped, res.OpacitySet, res.Hinted))
		},
	}
}

// inputErrorHandler reports key polling errors, skipping repeats of the
// previous message since the source is polled every tick.
func (b *bongoImpl) inputErrorHandler() render.ErrorHandler {
	var last string
	return func(err error) {
		if msg := err.Error(); msg != last {
			last = msg
			b.notifyError(fmt.Errorf("key input: %w", err))
		}
	}
}

func (b *bongoImpl) recordPress(side render.Side) {
	b.presses.Add(1)
	b.metrics.IncrementPresses(side)
}

// startWatcher starts the file watcher when enabled and returns its stop
// function, or nil.
func (b *bongoImpl) startWatcher(cfg *config.Config) func() {
	if !b.opts.WatchConfig {
		return nil
	}
	if b.configPath == "" {
		b.logger.Warn("config watching needs a file on disk", "config", b.configSource)
		return nil
	}

	paths := spritePaths(cfg)
	files := []string{b.configPath, paths.Background, paths.LeftUp, paths.LeftDown, paths.RightUp, paths.RightDown}
	if cfg.Decoration.Mask != "" {
		files = append(files, cfg.ResolvePath(cfg.Decoration.Mask))
	}

	cw, err := newConfigWatcher(files, b.opts.WatchDebounce, b.ReloadConfig, func(err error) {
		b.logger.Warn("config watch", "error", err)
	})
	if err != nil {
		b.notifyError(fmt.Errorf("config watcher: %w", err))
		return nil
	}
	cw.Start()
	b.logger.Debug("watching config", "files", len(files))
	return cw.Stop
}

// ReloadConfig reloads the configuration in-place without closing the window.
func (b *bongoImpl) ReloadConfig() error {
	if !b.running.Load() {
		return fmt.Errorf("bongo instance not running")
	}
	if b.configLoader == nil {
		return fmt.Errorf("no config loader available")
	}

	newCfg, err := b.configLoader()
	if err != nil {
		wrappedErr := fmt.Errorf("config reload failed: %w", err)
		b.notifyError(wrappedErr)
		return wrappedErr
	}

	b.mu.RLock()
	game, src := b.game, b.source
	b.mu.RUnlock()

	if game != nil {
		if err := b.applyConfigToGame(game, src, newCfg); err != nil {
			wrappedErr := fmt.Errorf("config reload failed: %w", err)
			b.notifyError(wrappedErr)
			return wrappedErr
		}
	}

	b.mu.Lock()
	b.cfg = newCfg
	b.mu.Unlock()

	b.metrics.IncrementConfigReloads()
	b.logger.Info("configuration reloaded", "config", b.configSource)
	b.emitEvent(EventConfigReloaded, "Configuration reloaded in-place")
	return nil
}

// applyConfigToGame swaps in new sprites, key bindings and clear color.
// Sprites are scaled to the window's current size.
func (b *bongoImpl) applyConfigToGame(game *render.Game, src input.Source, cfg *config.Config) error {
	left, right, err := pawKeys(cfg)
	if err != nil {
		return err
	}

	rc := game.Config()
	b.cache.Clear()
	frames, err := render.LoadFrames(b.cache, spritePaths(cfg), rc.Width, rc.Height)
	if err != nil {
		return err
	}

	if rc.Background != cfg.Decoration.Background {
		rc.Background = cfg.Decoration.Background
		game.SetConfig(rc)
	}
	game.SetInput(src, left, right)

	sprites := render.NewSpriteSet(frames)
	game.SetSprites(sprites)

	b.mu.Lock()
	old := b.sprites
	b.sprites = sprites
	b.mu.Unlock()
	old.Deallocate()
	return nil
}

// IsRunning returns true while the overlay window is open.
func (b *bongoImpl) IsRunning() bool {
	return b.running.Load()
}

// Status returns detailed status information about the instance.
func (b *bongoImpl) Status() Status {
	b.mu.RLock()
	startTime := b.startTime
	dec := b.decoration
	b.mu.RUnlock()

	return Status{
		Running:      b.running.Load(),
		StartTime:    startTime,
		Presses:      b.presses.Load(),
		Shaped:       dec.Shaped,
		OpacitySet:   dec.OpacitySet,
		LastError:    b.getError(),
		ConfigSource: b.configSource,
	}
}

// SetErrorHandler registers a callback for runtime errors.
func (b *bongoImpl) SetErrorHandler(handler ErrorHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errorHandler = handler
}

// SetEventHandler registers a callback for lifecycle events.
func (b *bongoImpl) SetEventHandler(handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.eventHandler = handler
}

// Metrics returns the metrics collector for this instance.
func (b *bongoImpl) Metrics() *Metrics {
	return b.metrics
}

func (b *bongoImpl) getError() error {
	if v := b.lastError.Load(); v != nil {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// notifyError stores err for Status and hands it to the error handler.
func (b *bongoImpl) notifyError(err error) {
	b.lastError.Store(err)
	b.metrics.IncrementErrors()
	b.logger.Error("runtime error", "error", err)

	b.mu.RLock()
	handler := b.errorHandler
	b.mu.RUnlock()

	if handler != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("error handler panicked", "panic", r, "handled_error", err)
				}
			}()
			handler(err)
		}()
	}

	b.emitEvent(EventError, err.Error())
}

// emitEvent sends an event to the event handler if configured.
func (b *bongoImpl) emitEvent(eventType EventType, message string) {
	b.metrics.IncrementEventsEmitted()

	b.mu.RLock()
	handler := b.eventHandler
	b.mu.RUnlock()

	if handler == nil {
		return
	}
	event := Event{Type: eventType, Timestamp: time.Now(), Message: message}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("event handler panicked", "panic", r, "event", eventType.String())
			}
		}()
		handler(event)
	}()
}
