// Package xwin decorates the overlay window: it clips the window to the
// opaque pixels of an image and sets its window-manager opacity.
//
// The X11 implementation talks to the server through the Display interface,
// so the connection is owned by the caller and can be replaced in tests.
package xwin

import (
	"errors"
	"image"
)

// OpacityProperty is the EWMH property compositors read for window opacity.
const OpacityProperty = "_NET_WM_WINDOW_OPACITY"

var (
	// ErrExtensionUnavailable means the display cannot shape windows.
	ErrExtensionUnavailable = errors.New("xwin: SHAPE extension unavailable")
	// ErrPropertyUnavailable means the opacity property is unknown to the display.
	ErrPropertyUnavailable = errors.New("xwin: " + OpacityProperty + " not available")
	// ErrNoDisplay means no X11 display could be opened.
	ErrNoDisplay = errors.New("xwin: no X11 display")
	// ErrWindowNotFound means no top-level window matched the lookup.
	ErrWindowNotFound = errors.New("xwin: window not found")
)

// WindowID is an X11 window resource id.
type WindowID uint32

// Atom is an interned X11 atom. AtomNone is never a valid property name.
type Atom uint32

// AtomNone is returned by InternAtom when the name does not exist.
const AtomNone Atom = 0

// Window is the platform capability used at startup to decorate the overlay.
// Both operations are all-or-nothing for the target window.
type Window interface {
	// ApplyShapeMask clips every fully transparent pixel of img out of the
	// window's bounding region.
	ApplyShapeMask(img image.Image) error
	// SetOpacity sets the window-manager opacity, 0 transparent to 255 opaque.
	SetOpacity(alpha uint8) error
	// SetStateHints asks the window manager to keep the window off the
	// taskbar and the pager. A call with both false does nothing.
	SetStateHints(skipTaskbar, skipPager bool) error
}

// NativeOpacity scales an 8-bit alpha to the 32-bit CARDINAL encoding of
// _NET_WM_WINDOW_OPACITY. 0xFFFFFFFF is a multiple of 255, so the result is
// exact: 0 maps to 0 and 255 to 0xFFFFFFFF.
func NativeOpacity(alpha uint8) uint32 {
	return uint32(alpha) * (0xFFFFFFFF / 0xFF)
}

// UnsupportedWindow is used where no X11 window is available. Every call
// fails with the matching sentinel error and has no side effects.
type UnsupportedWindow struct{}

// ApplyShapeMask always returns ErrExtensionUnavailable.
func (UnsupportedWindow) ApplyShapeMask(image.Image) error {
	return ErrExtensionUnavailable
}

// SetOpacity always returns ErrPropertyUnavailable.
func (UnsupportedWindow) SetOpacity(uint8) error {
	return ErrPropertyUnavailable
}

// SetStateHints always returns ErrNoDisplay.
func (UnsupportedWindow) SetStateHints(bool, bool) error {
	return ErrNoDisplay
}

var (
	_ Window = (*X11Window)(nil)
	_ Window = UnsupportedWindow{}
)
