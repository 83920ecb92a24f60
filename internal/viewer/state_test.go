package viewer

import (
	"io"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/camera"
	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/gpu/gputest"
	"github.com/Faultbox/modelview/internal/engine/input"
	"github.com/Faultbox/modelview/internal/engine/lighting"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/engine/shader"
	"github.com/Faultbox/modelview/internal/engine/shader/shaders"
	"github.com/Faultbox/modelview/internal/logger"
)

func key(k input.Key, a input.Action) input.Event {
	return input.Event{Type: input.EventKey, Key: k, Action: a}
}

func move(x, y float64) input.Event {
	return input.Event{Type: input.EventMouseMove, X: x, Y: y}
}

func TestNewStateFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Eye = []float32{1, 2, 3}
	cfg.Light.Color = []float32{0, 0, 1, 1}

	s := NewState(cfg)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, s.Camera.Eye)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Camera.LookAt)
	assert.Equal(t, mgl32.Vec4{0.5, 0.5, 0.5, 1}, s.Light.Position)
	assert.Equal(t, lighting.Blue, s.Light.Color)
	assert.Equal(t, float32(1), s.SpinStep)
	assert.Zero(t, s.Spin)
}

func TestSpinKeys(t *testing.T) {
	s := NewState(config.Default())

	s.Apply(key(input.KeyJ, input.ActionPress), 800, 800)
	s.Apply(key(input.KeyJ, input.ActionRepeat), 800, 800)
	s.Apply(key(input.KeyJ, input.ActionRelease), 800, 800)
	assert.Equal(t, float32(2), s.Spin)

	for i := 0; i < 5; i++ {
		s.Apply(key(input.KeyK, input.ActionPress), 800, 800)
	}
	assert.Equal(t, float32(-3), s.Spin, "spin is not clamped")
	assert.Equal(t, float32(357), s.SpinDegrees())
}

func TestSpinFullTurnByKeys(t *testing.T) {
	s := NewState(config.Default())

	for i := 0; i < 360; i++ {
		s.Apply(key(input.KeyJ, input.ActionPress), 800, 800)
	}

	rad := mgl32.DegToRad(s.Spin)
	assert.InDelta(t, 0, math32.Sin(rad), 1e-4, "sin of %v degrees", s.Spin)
	assert.InDelta(t, 1, math32.Cos(rad), 1e-4, "cos of %v degrees", s.Spin)
	assert.Equal(t, float32(360), s.Spin, "spin keeps accumulating past a full turn")
	assert.Zero(t, s.SpinDegrees())
}

func TestMoveKeys(t *testing.T) {
	s := NewState(config.Default())

	s.Apply(key(input.KeyW, input.ActionPress), 800, 800)
	assertNearVec3(t, mgl32.Vec3{0, 0, 0.9}, s.Camera.Eye, 1e-5)

	s.Apply(key(input.KeyS, input.ActionPress), 800, 800)
	s.Apply(key(input.KeyD, input.ActionPress), 800, 800)
	assertNearVec3(t, mgl32.Vec3{0.1, 0, 1}, s.Camera.Eye, 1e-5, "eye %v", s.Camera.Eye)

	s.Apply(key(input.KeyA, input.ActionPress), 800, 800)
	assertNearVec3(t, mgl32.Vec3{0, 0, 1}, s.Camera.Eye, 1e-5, "eye %v", s.Camera.Eye)
}

func TestLightPresetKeys(t *testing.T) {
	s := NewState(config.Default())

	presets := []struct {
		key  input.Key
		want mgl32.Vec4
	}{
		{input.Key2, lighting.Red},
		{input.Key3, lighting.Green},
		{input.Key4, lighting.Blue},
		{input.Key1, lighting.White},
	}
	for _, p := range presets {
		s.Apply(key(p.key, input.ActionPress), 800, 800)
		assert.Equal(t, p.want, s.Light.Color)
	}
}

func TestQuit(t *testing.T) {
	s := NewState(config.Default())
	s.Apply(key(input.KeyEscape, input.ActionRelease), 800, 800)
	assert.False(t, s.Quit(), "release is ignored")

	s.Apply(key(input.KeyEscape, input.ActionPress), 800, 800)
	assert.True(t, s.Quit())

	s = NewState(config.Default())
	s.Apply(input.Event{Type: input.EventQuit}, 800, 800)
	assert.True(t, s.Quit())
}

func TestPointerOrbit(t *testing.T) {
	s := NewState(config.Default())
	s.SetPointer(400, 400)

	// Moving left by a quarter of the width gives dx = +0.25.
	s.Apply(move(200, 400), 800, 800)

	want := camera.New()
	want.Orbit(0.25, 0)
	assertNearVec3(t, want.LookAt, s.Camera.LookAt, 1e-5, "got %v want %v", s.Camera.LookAt, want.LookAt)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, s.Camera.Eye)
}

func TestPointerZeroFramebuffer(t *testing.T) {
	s := NewState(config.Default())
	s.SetPointer(400, 400)

	s.Apply(move(100, 100), 0, 600)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Camera.LookAt, "no orbit without a framebuffer")

	// The sample above was still recorded, so this motion is relative to it.
	s.Apply(move(100, 100), 800, 800)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Camera.LookAt)
}

func TestWantDiagnostics(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, logger.Init(logger.Options{})) })
	cfg := config.Default()

	require.NoError(t, logger.Init(logger.Options{Level: "info", Console: true, Writer: io.Discard}))
	assert.False(t, wantDiagnostics(cfg), "info level skips the dump even with viewer.debug")

	require.NoError(t, logger.Init(logger.Options{Level: "debug", Console: true, Writer: io.Discard}))
	assert.True(t, wantDiagnostics(cfg))

	cfg.Viewer.Debug = false
	assert.False(t, wantDiagnostics(cfg))
}

func TestBuildFailureReleasesEverything(t *testing.T) {
	dev := gputest.New()
	dev.CompileErrors[gpu.FragmentShader] = "bad"

	_, err := build(dev, scene.QuadScene(), shaders.BasicVertex, shaders.BasicFragment, rendererConfig(config.Default()))
	require.Error(t, err)
	assert.Equal(t, 0, dev.Live())

	dev = gputest.New()
	sc := scene.QuadScene()
	sc.Meshes[0].Indices = append(sc.Meshes[0].Indices, 99, 99, 99)

	_, err = build(dev, sc, shaders.BasicVertex, shaders.BasicFragment, rendererConfig(config.Default()))
	require.Error(t, err)
	assert.Equal(t, 0, dev.Live())
}

func TestBuildAndDrawQuad(t *testing.T) {
	dev := gputest.New()
	dev.Declare(shader.Uniforms...)
	cfg := config.Default()

	r, err := build(dev, scene.QuadScene(), shaders.BasicVertex, shaders.BasicFragment, rendererConfig(cfg))
	require.NoError(t, err)

	s := NewState(cfg)
	s.Apply(key(input.KeyJ, input.ActionPress), 800, 800)
	r.Frame(800, 800, s.Camera, s.Light, s.Spin)

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, int32(9), dev.Draws[0].Count)
	assert.Equal(t, mgl32.Vec4{0.64, 0.93, 0.4, 1}, dev.ClearColorValue())

	r.Close()
	assert.Equal(t, 0, dev.Live())
}

func assertNearVec3(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
