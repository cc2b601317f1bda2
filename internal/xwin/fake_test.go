package xwin

import (
	"errors"

	"github.com/opd-ai/go-bongo/internal/mask"
)

// fakeDisplay records requests and keeps just enough server state to check
// shape and property results.
type fakeDisplay struct {
	shape      bool
	atoms      map[string]Atom
	props      map[WindowID]map[Atom][]uint32
	texts      map[WindowID]map[Atom]string
	owners     map[Atom]WindowID
	bitmapErr  error
	shapeErr   error
	bitmaps    []*fakeBitmap
	shapes     map[WindowID][]byte
	messages   []clientMessage
	syncs      int
	closed     bool
	nextAtomID Atom
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		shape:      true,
		atoms:      make(map[string]Atom),
		props:      make(map[WindowID]map[Atom][]uint32),
		texts:      make(map[WindowID]map[Atom]string),
		owners:     make(map[Atom]WindowID),
		shapes:     make(map[WindowID][]byte),
		nextAtomID: 100,
	}
}

type clientMessage struct {
	win  WindowID
	typ  Atom
	data [5]uint32
}

func (d *fakeDisplay) SendClientMessage(win WindowID, msgType Atom, data [5]uint32) error {
	d.messages = append(d.messages, clientMessage{win, msgType, data})
	return nil
}

func (d *fakeDisplay) atom(name string) Atom {
	a, ok := d.atoms[name]
	if !ok {
		a = d.nextAtomID
		d.nextAtomID++
		d.atoms[name] = a
	}
	return a
}

func (d *fakeDisplay) Root() WindowID { return 1 }
func (d *fakeDisplay) Screen() int    { return 0 }

func (d *fakeDisplay) ShapeSupported() bool { return d.shape }

func (d *fakeDisplay) NewBitmap(drawable WindowID, width, height int) (Bitmap, error) {
	if d.bitmapErr != nil {
		return nil, d.bitmapErr
	}
	bm := &fakeBitmap{
		width:  width,
		height: height,
		bits:   make([]byte, width*height),
	}
	d.bitmaps = append(d.bitmaps, bm)
	return bm, nil
}

func (d *fakeDisplay) SetBoundingShape(win WindowID, bm Bitmap) error {
	if d.shapeErr != nil {
		return d.shapeErr
	}
	b, ok := bm.(*fakeBitmap)
	if !ok {
		return errors.New("foreign bitmap")
	}
	d.shapes[win] = append([]byte(nil), b.bits...)
	return nil
}

func (d *fakeDisplay) InternAtom(name string, onlyIfExists bool) (Atom, error) {
	if a, ok := d.atoms[name]; ok {
		return a, nil
	}
	if onlyIfExists {
		return AtomNone, nil
	}
	return d.atom(name), nil
}

func (d *fakeDisplay) SetCardinal(win WindowID, prop Atom, value uint32) error {
	d.setCardinals(win, prop, value)
	return nil
}

func (d *fakeDisplay) setCardinals(win WindowID, prop Atom, values ...uint32) {
	if d.props[win] == nil {
		d.props[win] = make(map[Atom][]uint32)
	}
	d.props[win][prop] = values
}

func (d *fakeDisplay) setText(win WindowID, prop Atom, s string) {
	if d.texts[win] == nil {
		d.texts[win] = make(map[Atom]string)
	}
	d.texts[win][prop] = s
}

func (d *fakeDisplay) Cardinals(win WindowID, prop Atom) ([]uint32, error) {
	return d.props[win][prop], nil
}

func (d *fakeDisplay) Text(win WindowID, prop Atom) (string, error) {
	return d.texts[win][prop], nil
}

func (d *fakeDisplay) SelectionOwner(selection Atom) (WindowID, error) {
	return d.owners[selection], nil
}

func (d *fakeDisplay) Sync() error {
	d.syncs++
	return nil
}

func (d *fakeDisplay) Close() { d.closed = true }

// fakeBitmap stores one byte per pixel: 1 visible, 0 clipped.
type fakeBitmap struct {
	width, height int
	bits          []byte
	fills         [][]mask.Rect
	freed         int
}

func (b *fakeBitmap) Fill(visible bool, rects []mask.Rect) error {
	var v byte
	if visible {
		v = 1
	}
	b.fills = append(b.fills, rects)
	for _, r := range rects {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				b.bits[y*b.width+x] = v
			}
		}
	}
	return nil
}

func (b *fakeBitmap) Free() { b.freed++ }
