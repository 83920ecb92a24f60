// Package camera provides the free-look camera of the viewer.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/pkg/math"
)

// Defaults for a new camera.
const (
	DefaultMoveStep     = 0.1
	DefaultOrbitDegrees = 30
)

// Camera is an eye point looking at a target point with a fixed world up.
type Camera struct {
	Eye    mgl32.Vec3
	LookAt mgl32.Vec3

	// MoveStep is the fraction of the eye to target distance covered by one
	// move. OrbitDegrees is the rotation for a full-framebuffer pointer sweep.
	MoveStep     float32
	OrbitDegrees float32
}

// New creates a camera at (0,0,1) looking at the origin.
func New() *Camera {
	return &Camera{
		Eye:          mgl32.Vec3{0, 0, 1},
		LookAt:       mgl32.Vec3{0, 0, 0},
		MoveStep:     DefaultMoveStep,
		OrbitDegrees: DefaultOrbitDegrees,
	}
}

// Direction returns the vector from the eye to the target.
func (c *Camera) Direction() mgl32.Vec3 {
	return c.LookAt.Sub(c.Eye)
}

// Forward moves eye and target toward the target.
func (c *Camera) Forward() {
	c.translate(c.Direction().Mul(c.MoveStep))
}

// Back moves eye and target away from the target.
func (c *Camera) Back() {
	c.translate(c.Direction().Mul(-c.MoveStep))
}

// StrafeRight moves eye and target sideways to the right.
func (c *Camera) StrafeRight() {
	c.translate(c.right().Mul(c.MoveStep))
}

// StrafeLeft moves eye and target sideways to the left.
func (c *Camera) StrafeLeft() {
	c.translate(c.right().Mul(-c.MoveStep))
}

// Orbit turns the target about the eye. dx and dy are pointer deltas in
// framebuffer-normalised units: dx rotates around world up, then dy rotates
// around the eye's local horizontal axis.
func (c *Camera) Orbit(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	dir := c.Direction()
	xRot := math.LocalRotate(c.Eye, math.WorldUp, c.OrbitDegrees*dx)
	yRot := math.LocalRotate(c.Eye, mgl32.Vec3{0, -1, 0}.Cross(dir), c.OrbitDegrees*dy)

	c.LookAt = mgl32.TransformCoordinate(c.LookAt, yRot.Mul4(xRot))
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.LookAt, math.WorldUp)
}

// right is cross(up, -direction), horizontal and unnormalised.
func (c *Camera) right() mgl32.Vec3 {
	return math.WorldUp.Cross(c.Direction().Mul(-1))
}

func (c *Camera) translate(d mgl32.Vec3) {
	c.Eye = c.Eye.Add(d)
	c.LookAt = c.LookAt.Add(d)
}
