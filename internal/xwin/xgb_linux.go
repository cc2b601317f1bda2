//go:build linux

package xwin

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xproto"

	"github.com/opd-ai/go-bongo/internal/mask"
)

// propertyReadLength is the number of 32-bit units fetched per GetProperty.
const propertyReadLength = 1024

// xgbDisplay is the Display backed by a jezek/xgb connection.
type xgbDisplay struct {
	conn     *xgb.Conn
	root     xproto.Window
	screen   int
	shapeOK  bool
	maxRects int
}

// Open connects to $DISPLAY. The caller owns the returned Display and must
// Close it.
func Open() (Display, error) {
	return OpenDisplay("")
}

// OpenDisplay connects to the named display ("" means $DISPLAY).
func OpenDisplay(name string) (Display, error) {
	conn, err := xgb.NewConnDisplay(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}

	setup := xproto.Setup(conn)
	if setup == nil || len(setup.Roots) == 0 {
		conn.Close()
		return nil, ErrNoDisplay
	}

	d := &xgbDisplay{
		conn:     conn,
		root:     setup.DefaultScreen(conn).Root,
		screen:   conn.DefaultScreen,
		maxRects: rectsPerRequest(setup.MaximumRequestLength),
	}

	// shape.Init registers the extension opcode; it fails when the server
	// does not advertise SHAPE.
	d.shapeOK = shape.Init(conn) == nil

	return d, nil
}

// rectsPerRequest returns how many rectangles fit in one PolyFillRectangle.
// The request header takes three 4-byte units, each rectangle two.
func rectsPerRequest(maxLen uint16) int {
	n := (int(maxLen) - 3) / 2
	if n < 1 {
		return 1
	}
	return n
}

func (d *xgbDisplay) Root() WindowID {
	return WindowID(d.root)
}

func (d *xgbDisplay) Screen() int {
	return d.screen
}

func (d *xgbDisplay) ShapeSupported() bool {
	return d.shapeOK
}

func (d *xgbDisplay) NewBitmap(drawable WindowID, width, height int) (Bitmap, error) {
	pix, err := xproto.NewPixmapId(d.conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreatePixmapChecked(d.conn, 1, pix, xproto.Drawable(drawable),
		uint16(width), uint16(height)).Check(); err != nil {
		return nil, err
	}

	gc, err := xproto.NewGcontextId(d.conn)
	if err != nil {
		xproto.FreePixmap(d.conn, pix)
		return nil, err
	}
	if err := xproto.CreateGCChecked(d.conn, gc, xproto.Drawable(pix),
		xproto.GcForeground, []uint32{1}).Check(); err != nil {
		xproto.FreePixmap(d.conn, pix)
		return nil, err
	}

	return &xgbBitmap{display: d, pixmap: pix, gc: gc}, nil
}

func (d *xgbDisplay) SetBoundingShape(win WindowID, bm Bitmap) error {
	b, ok := bm.(*xgbBitmap)
	if !ok {
		return fmt.Errorf("bitmap %T was not created by this display", bm)
	}
	return shape.MaskChecked(d.conn, shape.SoSet, shape.SkBounding,
		xproto.Window(win), 0, 0, b.pixmap).Check()
}

func (d *xgbDisplay) InternAtom(name string, onlyIfExists bool) (Atom, error) {
	reply, err := xproto.InternAtom(d.conn, onlyIfExists, uint16(len(name)), name).Reply()
	if err != nil {
		return AtomNone, err
	}
	return Atom(reply.Atom), nil
}

func (d *xgbDisplay) SetCardinal(win WindowID, prop Atom, value uint32) error {
	data := make([]byte, 4)
	xgb.Put32(data, value)
	return xproto.ChangePropertyChecked(d.conn, xproto.PropModeReplace, xproto.Window(win),
		xproto.Atom(prop), xproto.AtomCardinal, 32, 1, data).Check()
}

func (d *xgbDisplay) Cardinals(win WindowID, prop Atom) ([]uint32, error) {
	reply, err := xproto.GetProperty(d.conn, false, xproto.Window(win), xproto.Atom(prop),
		xproto.GetPropertyTypeAny, 0, propertyReadLength).Reply()
	if err != nil {
		return nil, err
	}
	if reply == nil || reply.Format != 32 {
		return nil, nil
	}

	vals := make([]uint32, 0, len(reply.Value)/4)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		vals = append(vals, xgb.Get32(reply.Value[i:]))
	}
	return vals, nil
}

func (d *xgbDisplay) Text(win WindowID, prop Atom) (string, error) {
	reply, err := xproto.GetProperty(d.conn, false, xproto.Window(win), xproto.Atom(prop),
		xproto.GetPropertyTypeAny, 0, propertyReadLength).Reply()
	if err != nil {
		return "", err
	}
	if reply == nil || reply.Format != 8 {
		return "", nil
	}
	return string(reply.Value[:reply.ValueLen]), nil
}

func (d *xgbDisplay) SendClientMessage(win WindowID, msgType Atom, data [5]uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(win),
		Type:   xproto.Atom(msgType),
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}
	return xproto.SendEventChecked(d.conn, false, d.root,
		xproto.EventMaskSubstructureNotify|xproto.EventMaskSubstructureRedirect,
		string(ev.Bytes())).Check()
}

func (d *xgbDisplay) SelectionOwner(selection Atom) (WindowID, error) {
	reply, err := xproto.GetSelectionOwner(d.conn, xproto.Atom(selection)).Reply()
	if err != nil {
		return 0, err
	}
	return WindowID(reply.Owner), nil
}

// Sync makes a round trip so every earlier request has reached the server.
func (d *xgbDisplay) Sync() error {
	_, err := xproto.GetInputFocus(d.conn).Reply()
	return err
}

func (d *xgbDisplay) Close() {
	d.conn.Close()
}

// xgbBitmap is a depth-1 pixmap and the GC used to draw into it.
type xgbBitmap struct {
	display *xgbDisplay
	pixmap  xproto.Pixmap
	gc      xproto.Gcontext
}

func (b *xgbBitmap) Fill(visible bool, rects []mask.Rect) error {
	var fg uint32
	if visible {
		fg = 1
	}
	conn := b.display.conn
	if err := xproto.ChangeGCChecked(conn, b.gc, xproto.GcForeground, []uint32{fg}).Check(); err != nil {
		return err
	}

	batch := make([]xproto.Rectangle, 0, min(len(rects), b.display.maxRects))
	for _, r := range rects {
		batch = append(batch, xproto.Rectangle{
			X: int16(r.X), Y: int16(r.Y),
			Width: uint16(r.Width), Height: uint16(r.Height),
		})
		if len(batch) == b.display.maxRects {
			xproto.PolyFillRectangle(conn, xproto.Drawable(b.pixmap), b.gc, batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		xproto.PolyFillRectangle(conn, xproto.Drawable(b.pixmap), b.gc, batch)
	}
	return nil
}

func (b *xgbBitmap) Free() {
	xproto.FreeGC(b.display.conn, b.gc)
	xproto.FreePixmap(b.display.conn, b.pixmap)
}
