// Package model provides CPU-side mesh data ready for GPU upload.
package model

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNotTriangles is returned when the index count is not a multiple of 3.
	ErrNotTriangles = errors.New("index count is not a multiple of 3")
	// ErrIndexOutOfRange is returned when an index references a missing vertex.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Vertex represents a mesh vertex with position, color and normal.
// The field layout is mirrored by the GPU vertex attributes.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
	Normal   mgl32.Vec3
}

// Mesh holds vertices and a triangle-list index buffer.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], o.Min[i])
		b.Max[i] = max(b.Max[i], o.Max[i])
	}
	return b
}
