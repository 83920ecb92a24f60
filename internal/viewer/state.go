package viewer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/camera"
	"github.com/Faultbox/modelview/internal/engine/input"
	"github.com/Faultbox/modelview/internal/engine/lighting"
)

// State is everything input can change between frames. The render loop
// reads it once per frame; the latest write wins.
type State struct {
	Camera *camera.Camera
	Light  lighting.PointLight

	// Spin is the accumulated rotation in degrees applied to every node
	// about the Z axis through its own origin. It is not wrapped.
	Spin     float32
	SpinStep float32

	quit         bool
	lastX, lastY float64
}

// NewState builds the initial state from configuration.
func NewState(cfg *config.Config) *State {
	cam := camera.New()
	cam.Eye = vec3(cfg.Camera.Eye, cam.Eye)
	cam.LookAt = vec3(cfg.Camera.LookAt, cam.LookAt)
	cam.MoveStep = cfg.Camera.MoveStep
	cam.OrbitDegrees = cfg.Camera.OrbitDegrees

	light := lighting.NewPointLight()
	light.Position = vec4(cfg.Light.Position, light.Position)
	light.Color = vec4(cfg.Light.Color, light.Color)

	return &State{
		Camera:   cam,
		Light:    light,
		SpinStep: cfg.Camera.SpinStepDegrees,
	}
}

// SetPointer records the pointer position without orbiting.
func (s *State) SetPointer(x, y float64) {
	s.lastX, s.lastY = x, y
}

// Quit reports whether an exit was requested.
func (s *State) Quit() bool {
	return s.quit
}

// SpinDegrees returns Spin folded into [0, 360).
func (s *State) SpinDegrees() float32 {
	d := math32.Mod(s.Spin, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// Apply updates the state for one event. fbWidth and fbHeight are the
// current framebuffer size used to normalise pointer motion.
func (s *State) Apply(e input.Event, fbWidth, fbHeight int) {
	switch e.Type {
	case input.EventQuit:
		s.quit = true

	case input.EventKey:
		if e.Action == input.ActionRelease {
			return
		}
		s.applyKey(e.Key)

	case input.EventMouseMove:
		s.applyPointer(e.X, e.Y, fbWidth, fbHeight)
	}
}

func (s *State) applyKey(k input.Key) {
	switch k {
	case input.KeyEscape:
		s.quit = true
	case input.KeyJ:
		s.Spin += s.SpinStep
	case input.KeyK:
		s.Spin -= s.SpinStep
	case input.KeyW:
		s.Camera.Forward()
	case input.KeyS:
		s.Camera.Back()
	case input.KeyA:
		s.Camera.StrafeLeft()
	case input.KeyD:
		s.Camera.StrafeRight()
	case input.Key1:
		s.Light.SetPreset(0)
	case input.Key2:
		s.Light.SetPreset(1)
	case input.Key3:
		s.Light.SetPreset(2)
	case input.Key4:
		s.Light.SetPreset(3)
	}
}

// applyPointer orbits by the motion since the last sample, normalised by
// the framebuffer size. The last position is recorded even when the
// framebuffer is empty and no orbit happens.
func (s *State) applyPointer(x, y float64, fbWidth, fbHeight int) {
	defer s.SetPointer(x, y)

	if fbWidth == 0 || fbHeight == 0 {
		return
	}
	dx := float32((s.lastX - x) / float64(fbWidth))
	dy := float32((s.lastY - y) / float64(fbHeight))
	s.Camera.Orbit(dx, dy)
}

func vec3(v []float32, fallback mgl32.Vec3) mgl32.Vec3 {
	if len(v) != 3 {
		return fallback
	}
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func vec4(v []float32, fallback mgl32.Vec4) mgl32.Vec4 {
	if len(v) != 4 {
		return fallback
	}
	return mgl32.Vec4{v[0], v[1], v[2], v[3]}
}
