// Package lighting provides the viewer's point light.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PointLight is a single point light. Position is in world space with w = 1.
type PointLight struct {
	Position mgl32.Vec4
	Color    mgl32.Vec4
}

// Color presets selectable at runtime.
var (
	White = mgl32.Vec4{1, 1, 1, 1}
	Red   = mgl32.Vec4{1, 0, 0, 1}
	Green = mgl32.Vec4{0, 1, 0, 1}
	Blue  = mgl32.Vec4{0, 0, 1, 1}
)

// Presets lists the colour presets in selection order.
var Presets = []mgl32.Vec4{White, Red, Green, Blue}

// NewPointLight returns a white light at (0.5, 0.5, 0.5).
func NewPointLight() PointLight {
	return PointLight{
		Position: mgl32.Vec4{0.5, 0.5, 0.5, 1},
		Color:    White,
	}
}

// ViewPosition returns the light position transformed into view space.
func (l PointLight) ViewPosition(view mgl32.Mat4) mgl32.Vec4 {
	return view.Mul4x1(l.Position)
}

// SetPreset switches to preset i and reports whether i is valid.
func (l *PointLight) SetPreset(i int) bool {
	if i < 0 || i >= len(Presets) {
		return false
	}
	l.Color = Presets[i]
	return true
}
