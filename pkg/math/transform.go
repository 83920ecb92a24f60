// Package math provides transform helpers for the viewer on top of mgl32.
//
// All matrices are column-major (OpenGL compatible) and angles passed to
// these helpers are in degrees unless noted otherwise.
package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the fixed up vector of the viewer.
var WorldUp = mgl32.Vec3{0, 1, 0}

// AxisZ is the spin axis applied to every scene node.
var AxisZ = mgl32.Vec3{0, 0, 1}

// LocalRotate returns a rotation of degrees about axis through pivot:
// translate(+pivot) * rotate(axis) * translate(-pivot).
// A zero axis yields the identity.
func LocalRotate(pivot, axis mgl32.Vec3, degrees float32) mgl32.Mat4 {
	if axis.Len() == 0 {
		return mgl32.Ident4()
	}
	rot := mgl32.HomogRotate3D(mgl32.DegToRad(degrees), axis.Normalize())
	return mgl32.Translate3D(pivot[0], pivot[1], pivot[2]).
		Mul4(rot).
		Mul4(mgl32.Translate3D(-pivot[0], -pivot[1], -pivot[2]))
}

// SpinZ rotates about the Z axis through pivot.
func SpinZ(pivot mgl32.Vec3, degrees float32) mgl32.Mat4 {
	return LocalRotate(pivot, AxisZ, degrees)
}

// Translation returns the translation column of m.
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 block of
// modelView. Singular input returns the identity.
func NormalMatrix(modelView mgl32.Mat4) mgl32.Mat3 {
	m3 := modelView.Mat3()
	if m3.Det() == 0 {
		return mgl32.Ident3()
	}
	return m3.Inv().Transpose()
}

// Aspect returns width/height, or 1 when either dimension is zero.
func Aspect(width, height int) float32 {
	if width == 0 || height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// FromColumnMajor64 converts a column-major float64 matrix.
func FromColumnMajor64(m [16]float64) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}

// Compose builds translation * rotation * scale. rotation is a quaternion in
// x, y, z, w order; an all-zero quaternion is treated as no rotation and an
// all-zero scale as unit scale.
func Compose(translation [3]float64, rotation [4]float64, scale [3]float64) mgl32.Mat4 {
	t := mgl32.Translate3D(float32(translation[0]), float32(translation[1]), float32(translation[2]))

	r := mgl32.Ident4()
	if rotation != [4]float64{} {
		q := mgl32.Quat{
			W: float32(rotation[3]),
			V: mgl32.Vec3{float32(rotation[0]), float32(rotation[1]), float32(rotation[2])},
		}
		r = q.Normalize().Mat4()
	}

	s := mgl32.Ident4()
	if scale != [3]float64{} {
		s = mgl32.Scale3D(float32(scale[0]), float32(scale[1]), float32(scale[2]))
	}

	return t.Mul4(r).Mul4(s)
}
