package xwin

import (
	"fmt"
	"image"

	"github.com/opd-ai/go-bongo/internal/mask"
)

// maxShapeDimension is the largest coordinate a rectangle request can carry.
const maxShapeDimension = 0x7FFF

// X11Window decorates one top-level window over a caller-owned Display.
type X11Window struct {
	display Display
	id      WindowID
}

// NewX11Window binds a window id to an open display. The window is never
// created or destroyed here.
func NewX11Window(d Display, id WindowID) *X11Window {
	return &X11Window{display: d, id: id}
}

// ID returns the decorated window's id.
func (w *X11Window) ID() WindowID {
	return w.id
}

// ApplyShapeMask builds a 1-bit canvas from img, initially all visible, with
// one clipped rectangle per run of transparent pixels, and commits it as the
// window's bounding shape. The canvas is freed on every path.
func (w *X11Window) ApplyShapeMask(img image.Image) error {
	if !w.display.ShapeSupported() {
		return ErrExtensionUnavailable
	}

	m, err := mask.FromImage(img)
	if err != nil {
		return fmt.Errorf("build mask: %w", err)
	}
	if m.Width > maxShapeDimension || m.Height > maxShapeDimension {
		return fmt.Errorf("mask %dx%d exceeds %d pixels", m.Width, m.Height, maxShapeDimension)
	}

	bm, err := w.display.NewBitmap(w.id, m.Width, m.Height)
	if err != nil {
		return fmt.Errorf("create bitmap: %w", err)
	}
	defer bm.Free()

	if err := bm.Fill(true, []mask.Rect{m.Bounds()}); err != nil {
		return fmt.Errorf("fill bitmap: %w", err)
	}
	if !m.Empty() {
		if err := bm.Fill(false, m.Rects()); err != nil {
			return fmt.Errorf("clip bitmap: %w", err)
		}
	}

	if err := w.display.SetBoundingShape(w.id, bm); err != nil {
		return fmt.Errorf("set bounding shape: %w", err)
	}
	return w.display.Sync()
}

// SetOpacity writes _NET_WM_WINDOW_OPACITY. The property is only looked up,
// never created; when the display does not know it nothing is written.
func (w *X11Window) SetOpacity(alpha uint8) error {
	native := NativeOpacity(alpha)

	prop, err := w.display.InternAtom(OpacityProperty, true)
	if err != nil {
		return fmt.Errorf("intern %s: %w", OpacityProperty, err)
	}
	if prop == AtomNone {
		return ErrPropertyUnavailable
	}

	if err := w.display.SetCardinal(w.id, prop, native); err != nil {
		return fmt.Errorf("set %s: %w", OpacityProperty, err)
	}
	return w.display.Sync()
}

// EWMH _NET_WM_STATE client message fields.
const (
	netWMStateAdd     = 1
	sourceApplication = 1
)

// SetStateHints adds _NET_WM_STATE_SKIP_TASKBAR and _NET_WM_STATE_SKIP_PAGER
// to the window's state. The window is already mapped, so the change is
// requested from the window manager instead of written to the property.
func (w *X11Window) SetStateHints(skipTaskbar, skipPager bool) error {
	var states []Atom
	for _, h := range []struct {
		on   bool
		name string
	}{
		{skipTaskbar, "_NET_WM_STATE_SKIP_TASKBAR"},
		{skipPager, "_NET_WM_STATE_SKIP_PAGER"},
	} {
		if !h.on {
			continue
		}
		a, err := w.display.InternAtom(h.name, false)
		if err != nil {
			return fmt.Errorf("intern %s: %w", h.name, err)
		}
		states = append(states, a)
	}
	if len(states) == 0 {
		return nil
	}

	state, err := w.display.InternAtom("_NET_WM_STATE", false)
	if err != nil {
		return fmt.Errorf("intern _NET_WM_STATE: %w", err)
	}

	data := [5]uint32{netWMStateAdd, uint32(states[0]), 0, sourceApplication, 0}
	if len(states) > 1 {
		data[2] = uint32(states[1])
	}
	if err := w.display.SendClientMessage(w.id, state, data); err != nil {
		return fmt.Errorf("send _NET_WM_STATE: %w", err)
	}
	return w.display.Sync()
}
