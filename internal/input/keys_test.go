package input

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name       string
		wantName   string
		wantSym    uint32
		wantEbiten ebiten.Key
	}{
		{"z", "z", 0x7a, ebiten.KeyZ},
		{"X", "x", 0x78, ebiten.KeyX},
		{"space", "space", 0x20, ebiten.KeySpace},
		{"Shift", "lshift", 0xffe1, ebiten.KeyShiftLeft},
		{"return", "enter", 0xff0d, ebiten.KeyEnter},
		{"F12", "f12", 0xffc9, ebiten.KeyF12},
		{"7", "7", 0x37, ebiten.KeyDigit7},
		{";", "semicolon", 0x3b, ebiten.KeySemicolon},
		{"90", "z", 0x7a, ebiten.KeyZ},
		{"0x58", "x", 0x78, ebiten.KeyX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.name, err)
			}
			if k.Name != tt.wantName || k.Keysym != tt.wantSym || k.Ebiten != tt.wantEbiten || !k.HasEbiten {
				t.Errorf("Lookup(%q) = %+v, want name=%s sym=0x%x", tt.name, k, tt.wantName, tt.wantSym)
			}
		})
	}
}

func TestLookup_RawKeysym(t *testing.T) {
	k, err := Lookup("0xff63") // Insert
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if k.Keysym != 0xff63 || k.HasEbiten {
		t.Errorf("Lookup(0xff63) = %+v, want X11-only key", k)
	}
	if k.String() != "0xff63" {
		t.Errorf("String() = %q", k.String())
	}
}

func TestLookup_Invalid(t *testing.T) {
	for _, name := range []string{"", "   ", "hyper", "f13"} {
		if _, err := Lookup(name); err == nil {
			t.Errorf("Lookup(%q) expected error", name)
		}
	}
}

func TestParseKeys(t *testing.T) {
	keys, err := ParseKeys([]string{"z", "x"})
	if err != nil {
		t.Fatalf("ParseKeys() error = %v", err)
	}
	var names []string
	for _, k := range keys {
		names = append(names, k.Name)
	}
	if !reflect.DeepEqual(names, []string{"z", "x"}) {
		t.Errorf("names = %v", names)
	}

	if _, err := ParseKeys([]string{"z", "nope"}); err == nil {
		t.Error("ParseKeys() expected error for unknown key")
	}
}

func TestEbitenSource_NoMapping(t *testing.T) {
	var src Source = EbitenSource{}
	if err := src.Poll(); err != nil {
		t.Errorf("Poll() error = %v", err)
	}
	if src.Pressed([]Key{FromKeysym(0xff63)}) {
		t.Error("Pressed() = true for key without ebiten mapping")
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
