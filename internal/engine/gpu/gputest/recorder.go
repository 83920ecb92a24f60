// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/engine/gpu"
)

// Draw is one recorded indexed draw call.
type Draw struct {
	VAO     uint32
	Count   int32
	Program uint32
}

// VertexArray is the recorded layout of a vertex array object.
type VertexArray struct {
	VBO    uint32
	EBO    uint32
	Stride int32
	Attrs  []gpu.Attribute
}

// Recorder implements gpu.Device in memory. It tracks every live object so
// tests can assert that nothing leaks, and records draws and uniform writes.
type Recorder struct {
	// CompileErrors makes compilation of the given stage kind fail with the
	// mapped info log.
	CompileErrors map[gpu.ShaderKind]string
	// LinkError, when non-empty, makes every link fail with this info log.
	LinkError string
	// MaxBuffers, when positive, makes buffer creation return 0 once that
	// many buffers are live.
	MaxBuffers int

	next uint32

	shaders      map[uint32]gpu.ShaderKind
	programs     map[uint32]bool // value: linked
	buffers      map[uint32]int
	vertexArrays map[uint32]VertexArray
	attachments  map[[2]uint32]bool

	uniforms  map[string]int32
	mat4      map[int32]mgl32.Mat4
	mat3      map[int32]mgl32.Mat3
	vec4      map[int32]mgl32.Vec4
	mat4Log   map[int32][]mgl32.Mat4
	current   uint32
	clearCol  mgl32.Vec4
	viewports [][2]int32

	Draws      []Draw
	Clears     int
	DepthTest  bool
	Deleted    int
	InvalidOps []string
}

var _ gpu.Device = (*Recorder)(nil)

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		CompileErrors: make(map[gpu.ShaderKind]string),
		shaders:       make(map[uint32]gpu.ShaderKind),
		programs:      make(map[uint32]bool),
		buffers:       make(map[uint32]int),
		vertexArrays:  make(map[uint32]VertexArray),
		attachments:   make(map[[2]uint32]bool),
		uniforms:      make(map[string]int32),
		mat4:          make(map[int32]mgl32.Mat4),
		mat3:          make(map[int32]mgl32.Mat3),
		vec4:          make(map[int32]mgl32.Vec4),
		mat4Log:       make(map[int32][]mgl32.Mat4),
	}
}

// Declare makes names resolvable by UniformLocation on any linked program.
func (r *Recorder) Declare(names ...string) {
	for _, name := range names {
		if _, ok := r.uniforms[name]; !ok {
			r.uniforms[name] = int32(len(r.uniforms))
		}
	}
}

func (r *Recorder) id() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) invalid(format string, args ...any) {
	r.InvalidOps = append(r.InvalidOps, fmt.Sprintf(format, args...))
}

func (r *Recorder) CreateShader(kind gpu.ShaderKind) uint32 {
	id := r.id()
	r.shaders[id] = kind
	return id
}

func (r *Recorder) CompileShader(shader uint32, source string) (bool, string) {
	kind, ok := r.shaders[shader]
	if !ok {
		r.invalid("compile of unknown shader %d", shader)
		return false, "invalid shader"
	}
	if msg, fail := r.CompileErrors[kind]; fail {
		return false, msg
	}
	return true, ""
}

func (r *Recorder) DeleteShader(shader uint32) {
	if _, ok := r.shaders[shader]; !ok {
		r.invalid("delete of unknown shader %d", shader)
		return
	}
	delete(r.shaders, shader)
	r.Deleted++
}

func (r *Recorder) CreateProgram() uint32 {
	id := r.id()
	r.programs[id] = false
	return id
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.attachments[[2]uint32{program, shader}] = true
}

func (r *Recorder) DetachShader(program, shader uint32) {
	delete(r.attachments, [2]uint32{program, shader})
}

func (r *Recorder) LinkProgram(program uint32) (bool, string) {
	if _, ok := r.programs[program]; !ok {
		r.invalid("link of unknown program %d", program)
		return false, "invalid program"
	}
	if r.LinkError != "" {
		return false, r.LinkError
	}
	r.programs[program] = true
	return true, ""
}

func (r *Recorder) DeleteProgram(program uint32) {
	if _, ok := r.programs[program]; !ok {
		r.invalid("delete of unknown program %d", program)
		return
	}
	delete(r.programs, program)
	r.Deleted++
}

func (r *Recorder) UseProgram(program uint32) {
	r.current = program
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	if linked := r.programs[program]; !linked {
		r.invalid("uniform lookup on unlinked program %d", program)
		return gpu.NotFound
	}
	loc, ok := r.uniforms[name]
	if !ok {
		return gpu.NotFound
	}
	return loc
}

func (r *Recorder) UniformMat4(location int32, m mgl32.Mat4) {
	if location == gpu.NotFound {
		r.invalid("mat4 write to unresolved location")
		return
	}
	r.mat4[location] = m
	r.mat4Log[location] = append(r.mat4Log[location], m)
}

func (r *Recorder) UniformMat3(location int32, m mgl32.Mat3) {
	if location == gpu.NotFound {
		r.invalid("mat3 write to unresolved location")
		return
	}
	r.mat3[location] = m
}

func (r *Recorder) UniformVec4(location int32, v mgl32.Vec4) {
	if location == gpu.NotFound {
		r.invalid("vec4 write to unresolved location")
		return
	}
	r.vec4[location] = v
}

func (r *Recorder) CreateBuffer(target gpu.BufferTarget, size int, data unsafe.Pointer) uint32 {
	if size > 0 && data == nil {
		r.invalid("buffer of %d bytes without data", size)
	}
	if r.MaxBuffers > 0 && len(r.buffers) >= r.MaxBuffers {
		return 0
	}
	id := r.id()
	r.buffers[id] = size
	return id
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	if _, ok := r.buffers[buffer]; !ok {
		r.invalid("delete of unknown buffer %d", buffer)
		return
	}
	delete(r.buffers, buffer)
	r.Deleted++
}

func (r *Recorder) CreateVertexArray(vbo, ebo uint32, stride int32, attrs []gpu.Attribute) uint32 {
	id := r.id()
	r.vertexArrays[id] = VertexArray{
		VBO:    vbo,
		EBO:    ebo,
		Stride: stride,
		Attrs:  append([]gpu.Attribute(nil), attrs...),
	}
	return id
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	if _, ok := r.vertexArrays[vao]; !ok {
		r.invalid("delete of unknown vertex array %d", vao)
		return
	}
	delete(r.vertexArrays, vao)
	r.Deleted++
}

func (r *Recorder) DrawTriangles(vao uint32, count int32) {
	if _, ok := r.vertexArrays[vao]; !ok {
		r.invalid("draw with unknown vertex array %d", vao)
	}
	r.Draws = append(r.Draws, Draw{VAO: vao, Count: count, Program: r.current})
}

func (r *Recorder) Viewport(width, height int32) {
	r.viewports = append(r.viewports, [2]int32{width, height})
}

func (r *Recorder) ClearColor(c mgl32.Vec4) {
	r.clearCol = c
}

func (r *Recorder) Clear() {
	r.Clears++
}

func (r *Recorder) EnableDepthTest() {
	r.DepthTest = true
}

// Shaders returns the number of live shader objects.
func (r *Recorder) Shaders() int { return len(r.shaders) }

// Programs returns the number of live program objects.
func (r *Recorder) Programs() int { return len(r.programs) }

// Buffers returns the number of live buffer objects.
func (r *Recorder) Buffers() int { return len(r.buffers) }

// VertexArrays returns the number of live vertex array objects.
func (r *Recorder) VertexArrays() int { return len(r.vertexArrays) }

// Attachments returns the number of shader attachments never detached.
func (r *Recorder) Attachments() int { return len(r.attachments) }

// Live returns the number of device objects that have not been deleted.
func (r *Recorder) Live() int {
	return r.Shaders() + r.Programs() + r.Buffers() + r.VertexArrays()
}

// VertexArray returns the recorded layout of vao.
func (r *Recorder) VertexArray(vao uint32) (VertexArray, bool) {
	va, ok := r.vertexArrays[vao]
	return va, ok
}

// BufferSize returns the size in bytes of a live buffer.
func (r *Recorder) BufferSize(buffer uint32) (int, bool) {
	size, ok := r.buffers[buffer]
	return size, ok
}

// Mat4 returns the last matrix written to the named uniform.
func (r *Recorder) Mat4(name string) (mgl32.Mat4, bool) {
	m, ok := r.mat4[r.location(name)]
	return m, ok
}

// Mat4Writes returns every matrix written to the named uniform, in order.
func (r *Recorder) Mat4Writes(name string) []mgl32.Mat4 {
	return r.mat4Log[r.location(name)]
}

// Mat3 returns the last matrix written to the named uniform.
func (r *Recorder) Mat3(name string) (mgl32.Mat3, bool) {
	m, ok := r.mat3[r.location(name)]
	return m, ok
}

// Vec4 returns the last vector written to the named uniform.
func (r *Recorder) Vec4(name string) (mgl32.Vec4, bool) {
	v, ok := r.vec4[r.location(name)]
	return v, ok
}

// CurrentProgram returns the program last passed to UseProgram.
func (r *Recorder) CurrentProgram() uint32 { return r.current }

// ClearColorValue returns the last clear colour set.
func (r *Recorder) ClearColorValue() mgl32.Vec4 { return r.clearCol }

// Viewports returns every viewport size set, in order.
func (r *Recorder) Viewports() [][2]int32 { return r.viewports }

func (r *Recorder) location(name string) int32 {
	loc, ok := r.uniforms[name]
	if !ok {
		return gpu.NotFound
	}
	return loc
}
