// Package renderer draws the loaded scene once per frame.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/engine/camera"
	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/lighting"
	"github.com/Faultbox/modelview/internal/engine/mesh"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/engine/shader"
	"github.com/Faultbox/modelview/internal/logger"
	"github.com/Faultbox/modelview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	FOVDegrees float32
	Near       float32
	Far        float32
	ClearColor mgl32.Vec4
}

// DefaultConfig returns a 90 degree perspective over [0.01, 50].
func DefaultConfig() Config {
	return Config{
		FOVDegrees: 90,
		Near:       0.01,
		Far:        50,
		ClearColor: mgl32.Vec4{0.64, 0.93, 0.4, 1},
	}
}

// Renderer owns the program and meshes of one scene and draws them.
type Renderer struct {
	config Config

	dev     gpu.Device
	program *shader.Program
	meshes  *mesh.Set
	scene   *scene.Scene

	view mgl32.Mat4
}

// New creates a renderer. It takes ownership of program and meshes and
// releases them in Close.
func New(dev gpu.Device, program *shader.Program, meshes *mesh.Set, sc *scene.Scene, cfg Config) (*Renderer, error) {
	if err := scene.Validate(sc); err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	r := &Renderer{
		config:  cfg,
		dev:     dev,
		program: program,
		meshes:  meshes,
		scene:   sc,
		view:    mgl32.Ident4(),
	}

	// Locations are cached by the program; undeclared names become no-op writes.
	program.Resolve(shader.Uniforms...)

	if n := sc.DanglingMeshRefs(); n > 0 {
		logger.Warn("scene references missing meshes, they will be skipped",
			zap.Int("references", n),
			zap.Int("meshes", meshes.Len()),
		)
	}

	dev.EnableDepthTest()
	dev.ClearColor(cfg.ClearColor)

	return r, nil
}

// Close releases the meshes and then the program.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.meshes != nil {
		r.meshes.Release()
		r.meshes = nil
	}
	if r.program != nil {
		r.program.Destroy()
		r.program = nil
	}
}

// Frame draws the scene into a framebuffer of the given size.
func (r *Renderer) Frame(fbWidth, fbHeight int, cam *camera.Camera, light lighting.PointLight, spin float32) {
	r.dev.Viewport(int32(fbWidth), int32(fbHeight))
	r.dev.Clear()
	r.program.Use()

	r.view = cam.ViewMatrix()
	proj := mgl32.Perspective(
		mgl32.DegToRad(r.config.FOVDegrees),
		math.Aspect(fbWidth, fbHeight),
		r.config.Near,
		r.config.Far,
	)

	r.program.SetMat4(shader.UniformView, r.view)
	r.program.SetMat4(shader.UniformProjection, proj)
	r.program.SetVec4(shader.UniformLightPos, light.ViewPosition(r.view))
	r.program.SetVec4(shader.UniformLightColor, light.Color)

	scene.Traverse(r.scene.Root, mgl32.Ident4(), spin, r.view, r)
}

// SetModel implements scene.DrawTarget.
func (r *Renderer) SetModel(m mgl32.Mat4) {
	r.program.SetMat4(shader.UniformModel, m)
}

// SetNormal implements scene.DrawTarget.
func (r *Renderer) SetNormal(m mgl32.Mat3) {
	r.program.SetMat3(shader.UniformNormal, m)
}

// DrawMesh implements scene.DrawTarget.
func (r *Renderer) DrawMesh(i int) bool {
	return r.meshes.Draw(i)
}
