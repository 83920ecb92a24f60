// Package mesh manages device-resident triangle meshes.
package mesh

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/model"
)

// ErrDevice is returned when the device fails to create an object.
var ErrDevice = errors.New("device object creation failed")

// Attribute slots shared with the vertex shader.
const (
	SlotPosition uint32 = 0
	SlotColor    uint32 = 1
	SlotNormal   uint32 = 2
)

// VertexStride is the size in bytes of one interleaved vertex.
var VertexStride = int32(unsafe.Sizeof(model.Vertex{}))

// Layout describes model.Vertex to the device.
var Layout = []gpu.Attribute{
	{Slot: SlotPosition, Components: 3, Offset: unsafe.Offsetof(model.Vertex{}.Position)},
	{Slot: SlotColor, Components: 4, Offset: unsafe.Offsetof(model.Vertex{}.Color)},
	{Slot: SlotNormal, Components: 3, Offset: unsafe.Offsetof(model.Vertex{}.Normal)},
}

// GPUMesh is a mesh uploaded to the device. The vertex array, vertex buffer
// and index buffer are either all live or all zero.
type GPUMesh struct {
	dev        gpu.Device
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Upload validates m and copies it into new device buffers.
func Upload(dev gpu.Device, m model.Mesh) (*GPUMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	g := &GPUMesh{dev: dev}

	var vertexData, indexData unsafe.Pointer
	if len(m.Vertices) > 0 {
		vertexData = unsafe.Pointer(&m.Vertices[0])
	}
	if len(m.Indices) > 0 {
		indexData = unsafe.Pointer(&m.Indices[0])
	}

	g.vbo = dev.CreateBuffer(gpu.ArrayBuffer, len(m.Vertices)*int(VertexStride), vertexData)
	if g.vbo == 0 {
		g.Release()
		return nil, fmt.Errorf("mesh %q: vertex buffer: %w", m.Name, ErrDevice)
	}

	g.ebo = dev.CreateBuffer(gpu.ElementArrayBuffer, len(m.Indices)*4, indexData)
	if g.ebo == 0 {
		g.Release()
		return nil, fmt.Errorf("mesh %q: index buffer: %w", m.Name, ErrDevice)
	}

	g.vao = dev.CreateVertexArray(g.vbo, g.ebo, VertexStride, Layout)
	if g.vao == 0 {
		g.Release()
		return nil, fmt.Errorf("mesh %q: vertex array: %w", m.Name, ErrDevice)
	}

	g.indexCount = int32(len(m.Indices))
	return g, nil
}

// Draw issues a single indexed draw of every triangle in the mesh.
// Released or empty meshes draw nothing.
func (g *GPUMesh) Draw() {
	if g.vao == 0 || g.indexCount == 0 {
		return
	}
	g.dev.DrawTriangles(g.vao, g.indexCount)
}

// IndexCount returns the number of indices drawn.
func (g *GPUMesh) IndexCount() int32 {
	return g.indexCount
}

// Ready reports whether the device objects are live.
func (g *GPUMesh) Ready() bool {
	return g.vao != 0
}

// Release deletes the device objects. Calling it again is a no-op.
func (g *GPUMesh) Release() {
	if g.vao != 0 {
		g.dev.DeleteVertexArray(g.vao)
	}
	if g.vbo != 0 {
		g.dev.DeleteBuffer(g.vbo)
	}
	if g.ebo != 0 {
		g.dev.DeleteBuffer(g.ebo)
	}
	g.vao, g.vbo, g.ebo = 0, 0, 0
	g.indexCount = 0
}
