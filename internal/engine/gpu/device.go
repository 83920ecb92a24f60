// Package gpu defines the graphics device operations used by the viewer core.
//
// The renderer, shader builder and mesh resources talk to the GPU only through
// Device. GL is the OpenGL 4.1 core implementation; gputest provides a
// recording implementation for tests.
package gpu

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// NotFound is the location returned for a parameter name the linked program
// does not declare. Writes to it are ignored.
const NotFound int32 = -1

// ShaderKind identifies a programmable pipeline stage.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

// String returns the stage name used in diagnostics.
func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// BufferTarget selects what a buffer object is bound as.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Attribute describes one float vertex attribute inside an interleaved buffer.
type Attribute struct {
	Slot       uint32
	Components int32
	Offset     uintptr
}

// Device is the set of graphics operations the core depends on.
// Object handles are non-zero on success; zero means creation failed.
type Device interface {
	CreateShader(kind ShaderKind) uint32
	// CompileShader sets the source of shader, compiles it and reports the
	// compile status together with the info log.
	CompileShader(shader uint32, source string) (ok bool, infoLog string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	// LinkProgram links program and reports the link status and info log.
	LinkProgram(program uint32) (ok bool, infoLog string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	UniformMat4(location int32, m mgl32.Mat4)
	UniformMat3(location int32, m mgl32.Mat3)
	UniformVec4(location int32, v mgl32.Vec4)

	// CreateBuffer allocates a static buffer of size bytes initialised from data.
	CreateBuffer(target BufferTarget, size int, data unsafe.Pointer) uint32
	DeleteBuffer(buffer uint32)
	// CreateVertexArray records the attribute layout over vbo and binds ebo as
	// its index buffer.
	CreateVertexArray(vbo, ebo uint32, stride int32, attrs []Attribute) uint32
	DeleteVertexArray(vao uint32)
	// DrawTriangles issues one indexed triangle-list draw of count uint32 indices.
	DrawTriangles(vao uint32, count int32)

	Viewport(width, height int32)
	ClearColor(c mgl32.Vec4)
	Clear()
	EnableDepthTest()
}
