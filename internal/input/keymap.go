package input

// keymapSize is the length of a QueryKeymap reply: one bit per keycode.
const keymapSize = 32

// keycodeTable maps each keysym in a GetKeyboardMapping reply to every
// keycode that produces it. syms holds perCode entries per keycode starting
// at minCode.
func keycodeTable(minCode byte, perCode int, syms []uint32) map[uint32][]byte {
	table := make(map[uint32][]byte)
	if perCode <= 0 {
		return table
	}
	for i, sym := range syms {
		if sym == 0 {
			continue
		}
		code := int(minCode) + i/perCode
		if code > 0xFF {
			break
		}
		codes := table[sym]
		if len(codes) > 0 && codes[len(codes)-1] == byte(code) {
			continue
		}
		table[sym] = append(codes, byte(code))
	}
	return table
}

// keyDown reports whether code is set in a QueryKeymap bit vector.
func keyDown(keymap []byte, code byte) bool {
	i := int(code) / 8
	if i >= len(keymap) {
		return false
	}
	return keymap[i]&(1<<(code%8)) != 0
}

// keymapState answers Pressed from a keycode table and the last keymap.
type keymapState struct {
	codes  map[uint32][]byte
	keymap []byte
}

func (s *keymapState) pressed(keys []Key) bool {
	for _, k := range keys {
		for _, code := range s.codes[k.Keysym] {
			if keyDown(s.keymap, code) {
				return true
			}
		}
	}
	return false
}
