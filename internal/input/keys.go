// Package input reports which bound keys are held down.
//
// Keys are named once in configuration and resolved to both an X11 keysym,
// used by the global keymap source, and an ebiten key, used when the overlay
// only sees its own keyboard focus.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Key is a named key resolved for every input backend.
type Key struct {
	// Name is the canonical lower-case name.
	Name string
	// Keysym is the X11 keysym.
	Keysym uint32
	// Ebiten is the matching ebiten key, valid when HasEbiten is true.
	Ebiten    ebiten.Key
	HasEbiten bool
}

// String returns the key name.
func (k Key) String() string {
	return k.Name
}

type keyDef struct {
	keysym uint32
	key    ebiten.Key
}

// keyTable maps canonical names to keysyms (X11 keysymdef.h) and ebiten keys.
var keyTable = map[string]keyDef{
	"a": {0x61, ebiten.KeyA}, "b": {0x62, ebiten.KeyB}, "c": {0x63, ebiten.KeyC},
	"d": {0x64, ebiten.KeyD}, "e": {0x65, ebiten.KeyE}, "f": {0x66, ebiten.KeyF},
	"g": {0x67, ebiten.KeyG}, "h": {0x68, ebiten.KeyH}, "i": {0x69, ebiten.KeyI},
	"j": {0x6a, ebiten.KeyJ}, "k": {0x6b, ebiten.KeyK}, "l": {0x6c, ebiten.KeyL},
	"m": {0x6d, ebiten.KeyM}, "n": {0x6e, ebiten.KeyN}, "o": {0x6f, ebiten.KeyO},
	"p": {0x70, ebiten.KeyP}, "q": {0x71, ebiten.KeyQ}, "r": {0x72, ebiten.KeyR},
	"s": {0x73, ebiten.KeyS}, "t": {0x74, ebiten.KeyT}, "u": {0x75, ebiten.KeyU},
	"v": {0x76, ebiten.KeyV}, "w": {0x77, ebiten.KeyW}, "x": {0x78, ebiten.KeyX},
	"y": {0x79, ebiten.KeyY}, "z": {0x7a, ebiten.KeyZ},

	"0": {0x30, ebiten.KeyDigit0}, "1": {0x31, ebiten.KeyDigit1}, "2": {0x32, ebiten.KeyDigit2},
	"3": {0x33, ebiten.KeyDigit3}, "4": {0x34, ebiten.KeyDigit4}, "5": {0x35, ebiten.KeyDigit5},
	"6": {0x36, ebiten.KeyDigit6}, "7": {0x37, ebiten.KeyDigit7}, "8": {0x38, ebiten.KeyDigit8},
	"9": {0x39, ebiten.KeyDigit9},

	"space":     {0x20, ebiten.KeySpace},
	"comma":     {0x2c, ebiten.KeyComma},
	"minus":     {0x2d, ebiten.KeyMinus},
	"period":    {0x2e, ebiten.KeyPeriod},
	"slash":     {0x2f, ebiten.KeySlash},
	"semicolon": {0x3b, ebiten.KeySemicolon},
	"quote":     {0x27, ebiten.KeyQuote},
	"lbracket":  {0x5b, ebiten.KeyBracketLeft},
	"rbracket":  {0x5d, ebiten.KeyBracketRight},

	"backspace": {0xff08, ebiten.KeyBackspace},
	"tab":       {0xff09, ebiten.KeyTab},
	"enter":     {0xff0d, ebiten.KeyEnter},
	"escape":    {0xff1b, ebiten.KeyEscape},
	"left":      {0xff51, ebiten.KeyArrowLeft},
	"up":        {0xff52, ebiten.KeyArrowUp},
	"right":     {0xff53, ebiten.KeyArrowRight},
	"down":      {0xff54, ebiten.KeyArrowDown},
	"lshift":    {0xffe1, ebiten.KeyShiftLeft},
	"rshift":    {0xffe2, ebiten.KeyShiftRight},
	"lctrl":     {0xffe3, ebiten.KeyControlLeft},
	"rctrl":     {0xffe4, ebiten.KeyControlRight},
	"lalt":      {0xffe9, ebiten.KeyAltLeft},
	"ralt":      {0xffea, ebiten.KeyAltRight},

	"f1": {0xffbe, ebiten.KeyF1}, "f2": {0xffbf, ebiten.KeyF2}, "f3": {0xffc0, ebiten.KeyF3},
	"f4": {0xffc1, ebiten.KeyF4}, "f5": {0xffc2, ebiten.KeyF5}, "f6": {0xffc3, ebiten.KeyF6},
	"f7": {0xffc4, ebiten.KeyF7}, "f8": {0xffc5, ebiten.KeyF8}, "f9": {0xffc6, ebiten.KeyF9},
	"f10": {0xffc7, ebiten.KeyF10}, "f11": {0xffc8, ebiten.KeyF11}, "f12": {0xffc9, ebiten.KeyF12},
}

var keyAliases = map[string]string{
	"shift":   "lshift",
	"ctrl":    "lctrl",
	"control": "lctrl",
	"alt":     "lalt",
	"return":  "enter",
	"esc":     "escape",
	",":       "comma",
	"-":       "minus",
	".":       "period",
	"/":       "slash",
	";":       "semicolon",
	"'":       "quote",
	"[":       "lbracket",
	"]":       "rbracket",
}

// Lookup resolves a key name. Names are case-insensitive. A decimal or 0x
// prefixed number is taken as a raw X11 keysym; upper-case Latin keysyms
// fold to their lower-case key.
func Lookup(name string) (Key, error) {
	if name == " " {
		name = "space"
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Key{}, fmt.Errorf("empty key name")
	}
	if alias, ok := keyAliases[n]; ok {
		n = alias
	}
	if def, ok := keyTable[n]; ok {
		return Key{Name: n, Keysym: def.keysym, Ebiten: def.key, HasEbiten: true}, nil
	}

	if len(n) > 1 {
		if sym, err := strconv.ParseUint(n, 0, 32); err == nil {
			return FromKeysym(uint32(sym)), nil
		}
	}
	return Key{}, fmt.Errorf("unknown key %q", name)
}

// FromKeysym returns the key for a raw keysym. Keysyms without a named
// entry only work with the X11 source.
func FromKeysym(sym uint32) Key {
	if sym >= 'A' && sym <= 'Z' {
		sym += 'a' - 'A'
	}
	for name, def := range keyTable {
		if def.keysym == sym {
			return Key{Name: name, Keysym: sym, Ebiten: def.key, HasEbiten: true}
		}
	}
	return Key{Name: fmt.Sprintf("0x%x", sym), Keysym: sym}
}

// ParseKeys resolves every name and reports the first unknown one.
func ParseKeys(names []string) ([]Key, error) {
	keys := make([]Key, 0, len(names))
	for _, name := range names {
		k, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Source reports key state. Poll is called once per tick before Pressed.
type Source interface {
	Poll() error
	// Pressed reports whether any of keys is held down.
	Pressed(keys []Key) bool
	Close() error
}

// EbitenSource reads keys through ebiten, which only sees input while the
// overlay window has keyboard focus.
type EbitenSource struct{}

// Poll is a no-op; ebiten refreshes key state itself every tick.
func (EbitenSource) Poll() error { return nil }

// Pressed reports whether any key with an ebiten mapping is down.
func (EbitenSource) Pressed(keys []Key) bool {
	for _, k := range keys {
		if k.HasEbiten && ebiten.IsKeyPressed(k.Ebiten) {
			return true
		}
	}
	return false
}

// Close is a no-op.
func (EbitenSource) Close() error { return nil }
