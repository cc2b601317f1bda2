// Package mask computes window clip regions from image alpha data.
//
// A pixel whose alpha channel is exactly zero is clipped; every other pixel
// stays visible. Contiguous clipped pixels on a row are coalesced into a
// single Span so the region can be committed with one rectangle per run.
package mask

import (
	"errors"
	"image"
)

// ErrEmptyImage is returned when the source image has no pixels.
var ErrEmptyImage = errors.New("mask: image has no pixels")

// Span is a maximal run of clipped pixels on one row, covering the
// half-open column range [Start, End).
type Span struct {
	Row   int
	Start int
	End   int
}

// Width returns the number of pixels covered by the span.
func (s Span) Width() int {
	return s.End - s.Start
}

// Rect is an axis-aligned rectangle in mask coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Mask is the transparency region derived from an image.
// Spans are ordered by row, then by start column, and never overlap.
type Mask struct {
	Width  int
	Height int
	Spans  []Span
}

// alphaReader returns the alpha of the pixel at (x, y) relative to the
// image's top-left corner.
type alphaReader func(x, y int) uint32

// FromImage scans img top to bottom, left to right and returns the spans of
// fully transparent pixels.
func FromImage(img image.Image) (*Mask, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	m := &Mask{Width: b.Dx(), Height: b.Dy()}
	alpha := alphaFunc(img)

	for y := 0; y < m.Height; y++ {
		runOpen := false
		runStart := 0
		for x := 0; x < m.Width; x++ {
			transparent := alpha(x, y) == 0
			switch {
			case transparent && !runOpen:
				runOpen = true
				runStart = x
			case !transparent && runOpen:
				m.Spans = append(m.Spans, Span{Row: y, Start: runStart, End: x})
				runOpen = false
			}
		}
		if runOpen {
			m.Spans = append(m.Spans, Span{Row: y, Start: runStart, End: m.Width})
		}
	}

	return m, nil
}

// alphaFunc picks a direct Pix reader for the common RGBA layouts and falls
// back to the color model for everything else.
func alphaFunc(img image.Image) alphaReader {
	b := img.Bounds()
	switch src := img.(type) {
	case *image.NRGBA:
		return func(x, y int) uint32 {
			return uint32(src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)+3])
		}
	case *image.RGBA:
		return func(x, y int) uint32 {
			return uint32(src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)+3])
		}
	default:
		return func(x, y int) uint32 {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			return a
		}
	}
}

// Empty reports whether the mask clips nothing.
func (m *Mask) Empty() bool {
	return len(m.Spans) == 0
}

// ClippedPixels returns the total number of clipped pixels.
func (m *Mask) ClippedPixels() int {
	n := 0
	for _, s := range m.Spans {
		n += s.Width()
	}
	return n
}

// Row returns the spans on row y.
func (m *Mask) Row(y int) []Span {
	var out []Span
	for _, s := range m.Spans {
		if s.Row == y {
			out = append(out, s)
		} else if s.Row > y {
			break
		}
	}
	return out
}

// Visible reports whether the pixel at (x, y) survives the clip.
// Points outside the mask are not visible.
func (m *Mask) Visible(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	for _, s := range m.Row(y) {
		if x >= s.Start && x < s.End {
			return false
		}
	}
	return true
}

// Rects returns one 1-pixel-high rectangle per span.
func (m *Mask) Rects() []Rect {
	rects := make([]Rect, len(m.Spans))
	for i, s := range m.Spans {
		rects[i] = Rect{X: s.Start, Y: s.Row, Width: s.Width(), Height: 1}
	}
	return rects
}

// Bounds returns the rectangle covering the whole mask.
func (m *Mask) Bounds() Rect {
	return Rect{Width: m.Width, Height: m.Height}
}
