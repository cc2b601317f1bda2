//go:build !linux

package input

// NewSource returns ebiten's focused-window input; global key polling is
// only implemented for X11.
func NewSource() Source {
	return EbitenSource{}
}
