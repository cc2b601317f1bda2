//go:build linux

package input

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X11Source polls the global keyboard state with QueryKeymap, so keys are
// seen even while another window has focus.
type X11Source struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	state keymapState
}

// NewX11Source opens its own connection to $DISPLAY and loads the keyboard
// mapping once.
func NewX11Source() (*X11Source, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}

	syms := make([]uint32, len(reply.Keysyms))
	for i, s := range reply.Keysyms {
		syms[i] = uint32(s)
	}

	return &X11Source{
		conn: conn,
		state: keymapState{
			codes:  keycodeTable(byte(setup.MinKeycode), int(reply.KeysymsPerKeycode), syms),
			keymap: make([]byte, keymapSize),
		},
	}, nil
}

// Poll fetches the current keymap.
func (s *X11Source) Poll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return fmt.Errorf("x11 input source closed")
	}
	reply, err := xproto.QueryKeymap(s.conn).Reply()
	if err != nil {
		return fmt.Errorf("query keymap: %w", err)
	}
	copy(s.state.keymap, reply.Keys)
	return nil
}

// Pressed reports whether any of keys was down at the last Poll.
func (s *X11Source) Pressed(keys []Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.pressed(keys)
}

// Close releases the X11 connection. Safe to call multiple times.
func (s *X11Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	return nil
}

// NewSource returns the global X11 source when a display is reachable and
// falls back to ebiten's focused-window input otherwise.
func NewSource() Source {
	if src, err := NewX11Source(); err == nil {
		return src
	}
	return EbitenSource{}
}
