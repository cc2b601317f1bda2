package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Slap animation parameters.
const (
	// SlapDistance is how far above its rest position the down sprite starts.
	SlapDistance = 6
	// SlapDuration is the slap length in seconds.
	SlapDuration = 0.08
)

// Paw tracks one paw's pressed state and slap offset.
type Paw struct {
	down   bool
	tween  *gween.Tween
	offset float32
}

// Update advances the paw by dt seconds. It reports true on the frame the
// paw goes down.
func (p *Paw) Update(pressed bool, dt float32) bool {
	pressedNow := pressed && !p.down
	p.down = pressed

	switch {
	case pressedNow:
		p.tween = gween.New(-SlapDistance, 0, SlapDuration, ease.OutQuad)
		p.offset = -SlapDistance
	case !pressed:
		p.tween = nil
		p.offset = 0
	}

	if p.tween != nil {
		val, done := p.tween.Update(dt)
		p.offset = val
		if done {
			p.tween = nil
			p.offset = 0
		}
	}
	return pressedNow
}

// Down reports whether the paw is down.
func (p *Paw) Down() bool { return p.down }

// Offset returns the vertical draw offset of the down sprite.
func (p *Paw) Offset() float32 { return p.offset }
