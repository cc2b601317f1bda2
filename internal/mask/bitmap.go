package mask

import (
	"fmt"
	"io"
)

// BitOrder selects how pixels are packed into bytes.
type BitOrder int

const (
	// LSBFirst puts the leftmost pixel of each byte in bit 0.
	LSBFirst BitOrder = iota
	// MSBFirst puts the leftmost pixel of each byte in bit 7.
	MSBFirst
)

// DefaultScanlinePad is the scanline alignment, in bits, used by X servers
// for depth-1 images.
const DefaultScanlinePad = 32

// Stride returns the number of bytes in one scanline of a packed bitmap
// padded to pad bits. Pads that are not whole bytes round up.
func (m *Mask) Stride(pad int) int {
	if pad <= 0 {
		pad = 8
	}
	bits := (m.Width + pad - 1) / pad * pad
	return (bits + 7) / 8
}

// Bitmap packs the mask into a 1-bit-per-pixel image where a set bit marks
// a visible pixel and a cleared bit a clipped one.
//
// The canvas starts fully visible and each span is cleared in one pass, the
// same way a server-side pixmap is filled.
func (m *Mask) Bitmap(order BitOrder, pad int) []byte {
	stride := m.Stride(pad)
	buf := make([]byte, stride*m.Height)

	for y := 0; y < m.Height; y++ {
		row := buf[y*stride : (y+1)*stride]
		for x := 0; x < m.Width; x++ {
			setBit(row, x, order, true)
		}
	}

	for _, s := range m.Spans {
		row := buf[s.Row*stride : (s.Row+1)*stride]
		for x := s.Start; x < s.End; x++ {
			setBit(row, x, order, false)
		}
	}

	return buf
}

func setBit(row []byte, x int, order BitOrder, on bool) {
	bit := uint(x % 8)
	if order == MSBFirst {
		bit = 7 - bit
	}
	if on {
		row[x/8] |= 1 << bit
	} else {
		row[x/8] &^= 1 << bit
	}
}

// WritePBM writes the mask as a binary PBM (P4) image: rows padded to
// whole bytes, leftmost pixel in the high bit, visible pixels black.
func (m *Mask) WritePBM(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P4\n%d %d\n", m.Width, m.Height); err != nil {
		return err
	}
	_, err := w.Write(m.Bitmap(MSBFirst, 8))
	return err
}
