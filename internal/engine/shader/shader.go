// Package shader provides shader compilation and program utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/logger"
)

// Stage is a compiled shader object of a single pipeline stage.
type Stage struct {
	ID   uint32
	Kind gpu.ShaderKind
}

// CompileStage compiles source as a shader of the given kind.
// On failure the shader object is deleted and a *CompileError is returned.
func CompileStage(dev gpu.Device, source string, kind gpu.ShaderKind) (Stage, error) {
	id := dev.CreateShader(kind)
	if id == 0 {
		return Stage{}, fmt.Errorf("create %s shader failed", kind)
	}

	ok, log := dev.CompileShader(id, source)
	if !ok {
		dev.DeleteShader(id)
		return Stage{}, &CompileError{Kind: kind, Log: log}
	}

	return Stage{ID: id, Kind: kind}, nil
}

// LinkProgram attaches the stages, links them and detaches them again
// whatever the outcome. On failure the program is deleted and a *LinkError
// is returned. Stages stay owned by the caller.
func LinkProgram(dev gpu.Device, stages ...Stage) (*Program, error) {
	id := dev.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("create program failed")
	}

	for _, s := range stages {
		dev.AttachShader(id, s.ID)
	}
	ok, log := dev.LinkProgram(id)
	for _, s := range stages {
		dev.DetachShader(id, s.ID)
	}

	if !ok {
		dev.DeleteProgram(id)
		return nil, &LinkError{Log: log}
	}

	return &Program{
		dev:       dev,
		id:        id,
		locations: make(map[string]int32),
	}, nil
}

// BuildProgram compiles vertex and fragment shaders and links them into a program.
// Both stage objects are deleted before returning, on success and on failure.
func BuildProgram(dev gpu.Device, vertexSrc, fragmentSrc string) (*Program, error) {
	vert, err := CompileStage(dev, vertexSrc, gpu.VertexShader)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vert.ID)

	frag, err := CompileStage(dev, fragmentSrc, gpu.FragmentShader)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(frag.ID)

	prog, err := LinkProgram(dev, vert, frag)
	if err != nil {
		return nil, err
	}

	logger.Debug("shader program linked", zap.Uint32("program", prog.id))
	return prog, nil
}

// Program is a linked shader program with a cache of parameter locations.
type Program struct {
	dev       gpu.Device
	id        uint32
	locations map[string]int32
}

// ID returns the device handle, or 0 once destroyed.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes the program current for subsequent draws.
func (p *Program) Use() {
	p.dev.UseProgram(p.id)
}

// Location returns the location of the named uniform, resolving it on first
// use. Names the program does not declare yield gpu.NotFound.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	if p.id == 0 {
		return gpu.NotFound
	}
	loc := p.dev.UniformLocation(p.id, name)
	p.locations[name] = loc
	return loc
}

// Resolve looks up every name up front and logs the result.
func (p *Program) Resolve(names ...string) {
	for _, name := range names {
		loc := p.Location(name)
		if loc == gpu.NotFound {
			logger.Warn("uniform not found", zap.String("name", name), zap.Uint32("program", p.id))
			continue
		}
		logger.Debug("uniform resolved", zap.String("name", name), zap.Int32("location", loc))
	}
}

// SetMat4 writes a 4x4 matrix parameter. Unresolved names are ignored.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.Location(name); loc != gpu.NotFound {
		p.dev.UniformMat4(loc, m)
	}
}

// SetMat3 writes a 3x3 matrix parameter. Unresolved names are ignored.
func (p *Program) SetMat3(name string, m mgl32.Mat3) {
	if loc := p.Location(name); loc != gpu.NotFound {
		p.dev.UniformMat3(loc, m)
	}
}

// SetVec4 writes a vec4 parameter. Unresolved names are ignored.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	if loc := p.Location(name); loc != gpu.NotFound {
		p.dev.UniformVec4(loc, v)
	}
}

// Destroy deletes the program. Calling it again is a no-op.
func (p *Program) Destroy() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
	clear(p.locations)
}
