// Package render provides the Ebiten-based overlay window for go-bongo.
// Game draws the background and paw sprites and polls the key source every
// tick; the caller hooks window decoration in through SetReadyFunc.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-bongo/internal/input"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// MaxReadyAttempts bounds how many ticks the ready hook is retried.
const MaxReadyAttempts = 120

// ErrorHandler is a function type for handling errors during game updates.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "update error: %v\n", err)
}

// ReadyFunc runs on the game goroutine once the window exists. It is called
// every tick until it returns true or MaxReadyAttempts is reached; attempt
// starts at 1.
type ReadyFunc func(attempt int) bool

// PressFunc is called on the tick a paw goes down.
type PressFunc func(side Side)

// Game implements ebiten.Game interface and handles rendering.
type Game struct {
	config       Config
	sprites      *SpriteSet
	source       input.Source
	leftKeys     []input.Key
	rightKeys    []input.Key
	left, right  Paw
	errorHandler ErrorHandler
	onReady      ReadyFunc
	onPress      PressFunc
	readyTries   int
	readyDone    bool
	metrics      *FrameMetrics
	lastUpdate   time.Time
	mu           sync.RWMutex
	running      bool
	ctx          context.Context
}

// NewGame creates a new Game instance with the provided configuration.
// Sprites and key bindings are set separately.
func NewGame(config Config) *Game {
	return &Game{
		config:       config,
		errorHandler: DefaultErrorHandler,
		metrics:      NewFrameMetrics(time.Second),
	}
}

// SetErrorHandler sets a custom error handler for update errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// SetReadyFunc sets the hook run once the window is up.
func (g *Game) SetReadyFunc(fn ReadyFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onReady = fn
	g.readyTries = 0
	g.readyDone = fn == nil
}

// SetPressFunc sets the hook run when a paw goes down.
func (g *Game) SetPressFunc(fn PressFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onPress = fn
}

// SetSprites replaces the sprite set. The previous set is not deallocated.
func (g *Game) SetSprites(s *SpriteSet) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sprites = s
}

// SetInput sets the key source and the keys driving each paw.
func (g *Game) SetInput(src input.Source, left, right []input.Key) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.source = src
	g.leftKeys = left
	g.rightKeys = right
}

// Metrics returns the update timing metrics.
func (g *Game) Metrics() *FrameMetrics {
	return g.metrics
}

// Update implements ebiten.Game.Update.
// It is called every tick.
func (g *Game) Update() error {
	if err := g.checkContext(); err != nil {
		return err
	}
	g.runReady()

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.lastUpdate.IsZero() {
		g.metrics.RecordFrame(now.Sub(g.lastUpdate))
	}
	g.lastUpdate = now

	var leftDown, rightDown bool
	if g.source != nil {
		if err := g.source.Poll(); err != nil {
			if g.errorHandler != nil {
				g.errorHandler(err)
			}
		} else {
			leftDown = g.source.Pressed(g.leftKeys)
			rightDown = g.source.Pressed(g.rightKeys)
		}
	}

	dt := float32(1) / float32(max(g.config.TPS, 1))
	if g.left.Update(leftDown, dt) && g.onPress != nil {
		g.onPress(SideLeft)
	}
	if g.right.Update(rightDown, dt) && g.onPress != nil {
		g.onPress(SideRight)
	}
	return nil
}

func (g *Game) checkContext() error {
	g.mu.RLock()
	ctx := g.ctx
	g.mu.RUnlock()

	if ctx != nil {
		select {
		case <-ctx.Done():
			return ErrGameTerminated
		default:
		}
	}
	return nil
}

// runReady calls the ready hook without holding the lock so the hook may
// use the Game's setters.
func (g *Game) runReady() {
	g.mu.Lock()
	if g.readyDone || g.onReady == nil {
		g.mu.Unlock()
		return
	}
	g.readyTries++
	attempt, fn := g.readyTries, g.onReady
	g.mu.Unlock()

	done := fn(attempt) || attempt >= MaxReadyAttempts

	g.mu.Lock()
	if done {
		g.readyDone = true
	}
	g.mu.Unlock()
}

// Draw implements ebiten.Game.Draw.
// It is called every frame to render the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	screen.Fill(g.config.Background)

	s := g.sprites
	if s == nil {
		return
	}
	drawSprite(screen, s.Background, 0)
	drawPaw(screen, &g.left, s.LeftUp, s.LeftDown)
	drawPaw(screen, &g.right, s.RightUp, s.RightDown)
}

func drawPaw(screen *ebiten.Image, p *Paw, up, down *ebiten.Image) {
	if p.Down() {
		drawSprite(screen, down, p.Offset())
		return
	}
	drawSprite(screen, up, 0)
}

func drawSprite(screen, img *ebiten.Image, dy float32) {
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(dy))
	screen.DrawImage(img, op)
}

// Layout implements ebiten.Game.Layout.
// It returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config.Width, g.config.Height
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the game configuration in-place.
// Window size and transparency changes do not take effect until restart.
func (g *Game) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = config
}

// PawState reports whether each paw is down.
func (g *Game) PawState() (left, right bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.left.Down(), g.right.Down()
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}

func (g *Game) setRunning(v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = v
}
