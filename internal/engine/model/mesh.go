package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultColor is the vertex color given to imported geometry.
var DefaultColor = mgl32.Vec4{1, 1, 0, 1}

// Validate checks that the mesh is a well-formed triangle list.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: %d indices: %w", m.Name, len(m.Indices), ErrNotTriangles)
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %q: index %d is %d with %d vertices: %w",
				m.Name, i, idx, n, ErrIndexOutOfRange)
		}
	}
	return nil
}

// TriangleCount returns the number of faces in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the bounding box of all vertex positions.
// An empty mesh yields a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < b.Min[i] {
				b.Min[i] = v.Position[i]
			}
			if v.Position[i] > b.Max[i] {
				b.Max[i] = v.Position[i]
			}
		}
	}
	return b
}

// GenerateNormals replaces every vertex normal with the area-weighted
// average of the normals of the faces that use it.
// Vertices not referenced by any face get +Y.
func (m *Mesh) GenerateNormals() {
	sums := make([]mgl32.Vec3, len(m.Vertices))
	for f := 0; f+2 < len(m.Indices); f += 3 {
		i0, i1, i2 := m.Indices[f], m.Indices[f+1], m.Indices[f+2]
		if int(i0) >= len(sums) || int(i1) >= len(sums) || int(i2) >= len(sums) {
			continue
		}
		p0 := m.Vertices[i0].Position
		e1 := m.Vertices[i1].Position.Sub(p0)
		e2 := m.Vertices[i2].Position.Sub(p0)

		// Unnormalized cross product weights by face area.
		n := e1.Cross(e2)
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}

	for i := range m.Vertices {
		if sums[i].Len() < 1e-12 {
			m.Vertices[i].Normal = mgl32.Vec3{0, 1, 0}
			continue
		}
		m.Vertices[i].Normal = sums[i].Normalize()
	}
}

// Quad returns a small procedural test mesh: a unit quad in the XY plane
// plus a third triangle reaching out to (0.75, 0), 5 vertices and 9 indices.
func Quad() Mesh {
	front := mgl32.Vec3{0, 0, 1}
	return Mesh{
		Name: "quad",
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Color: mgl32.Vec4{1, 0, 0, 1}, Normal: front},
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Color: mgl32.Vec4{0, 1, 0, 1}, Normal: front},
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: mgl32.Vec4{0, 0, 1, 1}, Normal: front},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: mgl32.Vec4{1, 1, 1, 1}, Normal: front},
			{Position: mgl32.Vec3{0.75, 0, 0}, Color: mgl32.Vec4{0.76, 0.65, 0.32, 1}, Normal: front},
		},
		Indices: []uint32{
			0, 3, 1,
			0, 2, 3,
			1, 3, 4,
		},
	}
}
