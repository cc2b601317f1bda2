package render

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens the undecorated overlay window and starts the Ebiten game loop.
// It blocks until the window is closed or the context set by SetContext is
// cancelled, and must be called from the main goroutine.
func (g *Game) Run() error {
	cfg := g.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(cfg.Floating)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetRunnableOnUnfocused(true)

	if cfg.Position != nil {
		if m := ebiten.Monitor(); m != nil {
			mw, mh := m.Size()
			ebiten.SetWindowPosition(cfg.Position(mw, mh))
		}
	}

	g.setRunning(true)
	defer g.setRunning(false)

	err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: cfg.ScreenTransparent,
	})
	if errors.Is(err, ErrGameTerminated) {
		return nil
	}
	return err
}
