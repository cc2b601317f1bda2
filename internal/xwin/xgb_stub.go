//go:build !linux

package xwin

// Open returns ErrNoDisplay on platforms without an X11 backend.
func Open() (Display, error) {
	return nil, ErrNoDisplay
}

// OpenDisplay returns ErrNoDisplay on platforms without an X11 backend.
func OpenDisplay(name string) (Display, error) {
	return nil, ErrNoDisplay
}
