package bongo

import (
	"errors"
	"image"

	"github.com/opd-ai/go-bongo/internal/render"
	"github.com/opd-ai/go-bongo/internal/xwin"
)

// decoration is the outcome of the startup window steps.
type decoration struct {
	Shaped     bool
	OpacitySet bool
	Hinted     bool
}

// decorator finds the overlay's X11 window and applies the shape mask and
// opacity to it. Its ready method is a render.ReadyFunc: it runs on the
// game goroutine and keeps one display connection open across attempts.
type decorator struct {
	open    func() (xwin.Display, error)
	pid     int
	title   string
	shape   bool
	mask    func() (image.Image, error)
	opacity uint8
	// EWMH state hints, requested after opacity.
	skipTaskbar, skipPager bool
	logger                 Logger
	onFail                 func(step string, err error)
	onDone                 func(decoration)

	display xwin.Display
}

func (dc *decorator) ready(attempt int) bool {
	if dc.display == nil {
		d, err := dc.open()
		if err != nil {
			dc.onFail("open display", err)
			dc.finish(decoration{})
			return true
		}
		dc.display = d
	}

	id, err := xwin.FindWindow(dc.display, dc.pid, dc.title)
	if errors.Is(err, xwin.ErrWindowNotFound) && attempt < render.MaxReadyAttempts {
		return false
	}
	defer dc.closeDisplay()
	if err != nil {
		dc.onFail("find window", err)
		dc.finish(decoration{})
		return true
	}

	dc.logger.Debug("decorating window", "window", uint32(id), "attempt", attempt)
	if msg := xwin.OpacityWarning(dc.display, dc.opacity); msg != "" {
		dc.logger.Warn(msg, "opacity", dc.opacity)
	}
	dc.finish(dc.apply(xwin.NewX11Window(dc.display, id)))
	return true
}

// apply runs the shape step (when enabled), the opacity step and the state
// hints (when enabled). A failed step does not prevent the others.
func (dc *decorator) apply(w xwin.Window) decoration {
	var res decoration
	if dc.shape {
		img, err := dc.mask()
		if err == nil {
			err = w.ApplyShapeMask(img)
		}
		if err != nil {
			dc.onFail("shape window", err)
		} else {
			res.Shaped = true
		}
	}

	if err := w.SetOpacity(dc.opacity); err != nil {
		dc.onFail("set opacity", err)
	} else {
		res.OpacitySet = true
	}

	if dc.skipTaskbar || dc.skipPager {
		if err := w.SetStateHints(dc.skipTaskbar, dc.skipPager); err != nil {
			dc.onFail("set state hints", err)
		} else {
			res.Hinted = true
		}
	}
	return res
}

func (dc *decorator) finish(res decoration) {
	if dc.onDone != nil {
		dc.onDone(res)
	}
}

func (dc *decorator) closeDisplay() {
	if dc.display != nil {
		dc.display.Close()
		dc.display = nil
	}
}
