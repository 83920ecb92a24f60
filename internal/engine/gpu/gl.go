package gpu

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/logger"
)

// GL is the OpenGL 4.1 core Device.
type GL struct{}

var _ Device = (*GL)(nil)

// Info describes the current OpenGL context.
type Info struct {
	Version     string
	Renderer    string
	GLSLVersion string
}

// NewGL loads the OpenGL entry points for the current context.
// IMPORTANT: Must be called AFTER the OpenGL context is made current!
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &GL{}
	info := d.Info()
	logger.Info("OpenGL initialized",
		zap.String("version", info.Version),
		zap.String("renderer", info.Renderer),
		zap.String("glsl", info.GLSLVersion),
	)
	return d, nil
}

// Info reports the version strings of the current context.
func (d *GL) Info() Info {
	return Info{
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}

func (d *GL) CreateShader(kind ShaderKind) uint32 {
	switch kind {
	case VertexShader:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case FragmentShader:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return 0
}

func (d *GL) CompileShader(shader uint32, source string) (bool, string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status, logLen int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen < 1 {
		logLen = 1
	}
	log := make([]byte, logLen)
	gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
	return status != gl.FALSE, trimLog(log)
}

func (d *GL) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GL) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *GL) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *GL) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *GL) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status, logLen int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen < 1 {
		logLen = 1
	}
	log := make([]byte, logLen)
	gl.GetProgramInfoLog(program, logLen, nil, &log[0])
	return status != gl.FALSE, trimLog(log)
}

func (d *GL) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GL) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GL) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GL) UniformMat4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *GL) UniformMat3(location int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (d *GL) UniformVec4(location int32, v mgl32.Vec4) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (d *GL) CreateBuffer(target BufferTarget, size int, data unsafe.Pointer) uint32 {
	glTarget := uint32(gl.ARRAY_BUFFER)
	if target == ElementArrayBuffer {
		glTarget = gl.ELEMENT_ARRAY_BUFFER
	}

	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(glTarget, buf)
	gl.BufferData(glTarget, size, data, gl.STATIC_DRAW)
	gl.BindBuffer(glTarget, 0)
	return buf
}

func (d *GL) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *GL) CreateVertexArray(vbo, ebo uint32, stride int32, attrs []Attribute) uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	for _, a := range attrs {
		gl.EnableVertexAttribArray(a.Slot)
		gl.VertexAttribPointerWithOffset(a.Slot, a.Components, gl.FLOAT, false, stride, a.Offset)
	}

	// The element binding is part of the vertex array state.
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao
}

func (d *GL) DeleteVertexArray(vao uint32) {
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &vao)
}

func (d *GL) DrawTriangles(vao uint32, count int32) {
	gl.BindVertexArray(vao)
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (d *GL) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (d *GL) ClearColor(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (d *GL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *GL) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
}

func trimLog(log []byte) string {
	return strings.TrimRight(string(log), "\x00\n ")
}
