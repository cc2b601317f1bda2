package input

import (
	"reflect"
	"testing"
)

func TestKeycodeTable(t *testing.T) {
	// Two keysyms per keycode starting at keycode 8:
	//   8: z Z
	//   9: x X
	//  10: (none)
	//  11: z (second z key)
	syms := []uint32{
		0x7a, 0x5a,
		0x78, 0x58,
		0, 0,
		0x7a, 0,
	}

	table := keycodeTable(8, 2, syms)

	if got := table[0x7a]; !reflect.DeepEqual(got, []byte{8, 11}) {
		t.Errorf("codes for z = %v, want [8 11]", got)
	}
	if got := table[0x58]; !reflect.DeepEqual(got, []byte{9}) {
		t.Errorf("codes for X = %v, want [9]", got)
	}
	if _, ok := table[0]; ok {
		t.Error("NoSymbol entries must be skipped")
	}
}

func TestKeycodeTable_DuplicateOnSameCode(t *testing.T) {
	table := keycodeTable(8, 4, []uint32{0x20, 0x20, 0x20, 0x20})
	if got := table[0x20]; !reflect.DeepEqual(got, []byte{8}) {
		t.Errorf("codes = %v, want [8]", got)
	}
}

func TestKeycodeTable_ZeroPerCode(t *testing.T) {
	if table := keycodeTable(8, 0, []uint32{0x20}); len(table) != 0 {
		t.Errorf("table = %v, want empty", table)
	}
}

func TestKeyDown(t *testing.T) {
	keymap := make([]byte, keymapSize)
	keymap[1] = 1 << 1 // keycode 9
	keymap[31] = 1 << 7

	tests := []struct {
		code byte
		want bool
	}{
		{9, true},
		{8, false},
		{10, false},
		{255, true},
	}
	for _, tt := range tests {
		if got := keyDown(keymap, tt.code); got != tt.want {
			t.Errorf("keyDown(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if keyDown(nil, 9) {
		t.Error("keyDown on empty keymap = true")
	}
}

func TestKeymapState_Pressed(t *testing.T) {
	z, _ := Lookup("z")
	x, _ := Lookup("x")

	s := keymapState{
		codes:  keycodeTable(8, 2, []uint32{0x7a, 0x5a, 0x78, 0x58}),
		keymap: make([]byte, keymapSize),
	}

	if s.pressed([]Key{z, x}) {
		t.Error("pressed() = true with empty keymap")
	}

	s.keymap[1] = 1 << 1 // keycode 9 (x)
	if !s.pressed([]Key{x}) {
		t.Error("pressed(x) = false with keycode 9 down")
	}
	if s.pressed([]Key{z}) {
		t.Error("pressed(z) = true with only keycode 9 down")
	}
	if !s.pressed([]Key{z, x}) {
		t.Error("pressed(z, x) = false with x down")
	}
}
