package mask

import (
	"bytes"
	"testing"
)

func TestMask_Stride(t *testing.T) {
	tests := []struct {
		width, pad, want int
	}{
		{1, 32, 4},
		{32, 32, 4},
		{33, 32, 8},
		{9, 8, 2},
		{9, 0, 2},
		{5, 12, 2},
		{13, 12, 3},
		{1, 1, 1},
	}
	for _, tt := range tests {
		m := &Mask{Width: tt.width, Height: 1}
		if got := m.Stride(tt.pad); got != tt.want {
			t.Errorf("Stride(width=%d, pad=%d) = %d, want %d", tt.width, tt.pad, got, tt.want)
		}
	}
}

func TestMask_Bitmap(t *testing.T) {
	m := &Mask{Width: 4, Height: 2, Spans: []Span{
		{Row: 0, Start: 1, End: 3},
		{Row: 1, Start: 0, End: 4},
	}}

	lsb := m.Bitmap(LSBFirst, 8)
	if want := []byte{0b00001001, 0b00000000}; !bytes.Equal(lsb, want) {
		t.Errorf("LSBFirst bitmap = %08b, want %08b", lsb, want)
	}

	msb := m.Bitmap(MSBFirst, 8)
	if want := []byte{0b10010000, 0b00000000}; !bytes.Equal(msb, want) {
		t.Errorf("MSBFirst bitmap = %08b, want %08b", msb, want)
	}
}

func TestMask_BitmapPadding(t *testing.T) {
	m := &Mask{Width: 3, Height: 1}
	got := m.Bitmap(LSBFirst, DefaultScanlinePad)
	want := []byte{0b00000111, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("Bitmap() = %08b, want %08b", got, want)
	}
}

func TestMask_WritePBM(t *testing.T) {
	m := &Mask{Width: 4, Height: 2, Spans: []Span{
		{Row: 0, Start: 1, End: 3},
		{Row: 1, Start: 0, End: 4},
	}}

	var buf bytes.Buffer
	if err := m.WritePBM(&buf); err != nil {
		t.Fatal(err)
	}
	want := append([]byte("P4\n4 2\n"), 0b1001_0000, 0b0000_0000)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("WritePBM() = %q, want %q", buf.Bytes(), want)
	}
}
