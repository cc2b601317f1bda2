package xwin

import "github.com/opd-ai/go-bongo/internal/mask"

// Display is the subset of X11 requests needed to find and decorate a window.
// Implementations are not required to be safe for concurrent use.
type Display interface {
	// Root returns the root window of the default screen.
	Root() WindowID
	// Screen returns the default screen number.
	Screen() int
	// ShapeSupported reports whether the SHAPE extension is present.
	ShapeSupported() bool
	// NewBitmap allocates a depth-1 pixmap on the screen of drawable.
	NewBitmap(drawable WindowID, width, height int) (Bitmap, error)
	// SetBoundingShape replaces the bounding region of win with bm.
	SetBoundingShape(win WindowID, bm Bitmap) error
	// InternAtom looks up (or, unless onlyIfExists, creates) an atom.
	InternAtom(name string, onlyIfExists bool) (Atom, error)
	// SetCardinal replaces prop on win with a single 32-bit CARDINAL.
	SetCardinal(win WindowID, prop Atom, value uint32) error
	// Cardinals reads a format-32 property as a list of values.
	Cardinals(win WindowID, prop Atom) ([]uint32, error)
	// Text reads a format-8 property as a string.
	Text(win WindowID, prop Atom) (string, error)
	// SendClientMessage sends a format-32 ClientMessage about win to the
	// root window, where the window manager listens for EWMH requests.
	SendClientMessage(win WindowID, msgType Atom, data [5]uint32) error
	// SelectionOwner returns the owner of a selection, 0 if unowned.
	SelectionOwner(selection Atom) (WindowID, error)
	// Sync blocks until the server has processed every pending request.
	Sync() error
	// Close releases the connection.
	Close()
}

// Bitmap is a server-side 1-bit canvas. A set bit keeps a pixel visible.
type Bitmap interface {
	// Fill sets every pixel covered by rects to visible or clipped.
	Fill(visible bool, rects []mask.Rect) error
	// Free releases the canvas and its graphics context.
	Free()
}
