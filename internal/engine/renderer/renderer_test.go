package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/modelview/internal/engine/camera"
	"github.com/Faultbox/modelview/internal/engine/gpu/gputest"
	"github.com/Faultbox/modelview/internal/engine/lighting"
	"github.com/Faultbox/modelview/internal/engine/mesh"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/engine/shader"
	"github.com/Faultbox/modelview/internal/engine/shader/shaders"
	"github.com/Faultbox/modelview/pkg/math"
)

func newRenderer(t *testing.T, dev *gputest.Recorder, sc *scene.Scene) *Renderer {
	t.Helper()

	prog, err := shader.BuildProgram(dev, shaders.BasicVertex, shaders.BasicFragment)
	require.NoError(t, err)

	meshes, err := mesh.UploadAll(dev, sc.Meshes)
	require.NoError(t, err)

	r, err := New(dev, prog, meshes, sc, DefaultConfig())
	require.NoError(t, err)
	return r
}

func TestQuadFrame(t *testing.T) {
	dev := gputest.New()
	dev.Declare(shader.Uniforms...)
	r := newRenderer(t, dev, scene.QuadScene())

	r.Frame(800, 800, camera.New(), lighting.NewPointLight(), 0)

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, int32(9), dev.Draws[0].Count)
	assert.Equal(t, r.program.ID(), dev.Draws[0].Program)
	assert.Equal(t, 1, dev.Clears)
	assert.Equal(t, [][2]int32{{800, 800}}, dev.Viewports())
	assert.True(t, dev.DepthTest)
	assert.Equal(t, mgl32.Vec4{0.64, 0.93, 0.4, 1}, dev.ClearColorValue())

	model, ok := dev.Mat4(shader.UniformModel)
	require.True(t, ok)
	assert.Equal(t, mgl32.Ident4(), model)

	view, ok := dev.Mat4(shader.UniformView)
	require.True(t, ok)
	assert.Equal(t, camera.New().ViewMatrix(), view)

	assert.Empty(t, dev.InvalidOps)
}

func TestFrameWritesEveryUniform(t *testing.T) {
	dev := gputest.New()
	dev.Declare(shader.Uniforms...)
	r := newRenderer(t, dev, scene.QuadScene())

	cam := camera.New()
	r.Frame(800, 800, cam, lighting.NewPointLight(), 0)

	for _, name := range []string{shader.UniformView, shader.UniformProjection, shader.UniformModel} {
		_, ok := dev.Mat4(name)
		assert.True(t, ok, "%s not written", name)
	}
	for _, name := range []string{shader.UniformLightPos, shader.UniformLightColor} {
		_, ok := dev.Vec4(name)
		assert.True(t, ok, "%s not written", name)
	}

	normal, ok := dev.Mat3(shader.UniformNormal)
	require.True(t, ok)
	assert.Equal(t, math.NormalMatrix(cam.ViewMatrix()), normal)
	assert.Empty(t, dev.InvalidOps)
}

func TestFrameProjection(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		aspect float32
	}{
		{"square", 800, 800, 1},
		{"wide", 1600, 800, 2},
		{"zero width", 0, 600, 1},
		{"minimised", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gputest.New()
			dev.Declare(shader.Uniforms...)
			r := newRenderer(t, dev, scene.QuadScene())

			r.Frame(tt.w, tt.h, camera.New(), lighting.NewPointLight(), 0)

			proj, ok := dev.Mat4(shader.UniformProjection)
			require.True(t, ok)
			want := mgl32.Perspective(mgl32.DegToRad(90), tt.aspect, 0.01, 50)
			assertNearMat4(t, want, proj, 1e-5, "got %v", proj)
		})
	}
}

func TestFrameLightInViewSpace(t *testing.T) {
	dev := gputest.New()
	dev.Declare(shader.Uniforms...)
	r := newRenderer(t, dev, scene.QuadScene())

	light := lighting.NewPointLight()
	light.SetPreset(1)
	r.Frame(800, 800, camera.New(), light, 0)

	pos, ok := dev.Vec4(shader.UniformLightPos)
	require.True(t, ok)
	assertNearVec4(t, mgl32.Vec4{0.5, 0.5, -0.5, 1}, pos, 1e-5, "got %v", pos)

	color, ok := dev.Vec4(shader.UniformLightColor)
	require.True(t, ok)
	assert.Equal(t, lighting.Red, color)
}

func TestFrameSpin(t *testing.T) {
	dev := gputest.New()
	dev.Declare(shader.Uniforms...)
	r := newRenderer(t, dev, scene.QuadScene())

	for i := 0; i < 360; i++ {
		r.Frame(800, 800, camera.New(), lighting.NewPointLight(), float32(i))
	}
	r.Frame(800, 800, camera.New(), lighting.NewPointLight(), 360)

	model, ok := dev.Mat4(shader.UniformModel)
	require.True(t, ok)
	assertNearMat4(t, mgl32.Ident4(), model, 1e-4, "360 degrees should look like 0, got %v", model)
	assert.Len(t, dev.Mat4Writes(shader.UniformModel), 361)
}

func TestFrameWithUndeclaredParameters(t *testing.T) {
	dev := gputest.New()
	dev.Declare(shader.UniformModel, shader.UniformView)
	r := newRenderer(t, dev, scene.QuadScene())

	r.Frame(640, 480, camera.New(), lighting.NewPointLight(), 10)

	assert.Len(t, dev.Draws, 1)
	assert.Empty(t, dev.InvalidOps, "writes to unknown parameters must be skipped")
}

func TestNewRejectsIncompleteScene(t *testing.T) {
	dev := gputest.New()
	sc := scene.QuadScene()
	sc.Flags |= scene.FlagIncomplete

	prog, err := shader.BuildProgram(dev, "v", "f")
	require.NoError(t, err)
	defer prog.Destroy()

	_, err = New(dev, prog, &mesh.Set{}, sc, DefaultConfig())
	assert.ErrorIs(t, err, scene.ErrIncomplete)
}

func TestCloseReleasesEverything(t *testing.T) {
	dev := gputest.New()
	dev.Declare(shader.Uniforms...)
	r := newRenderer(t, dev, scene.QuadScene())

	r.Frame(800, 800, camera.New(), lighting.NewPointLight(), 0)
	r.Close()
	r.Close()

	assert.Equal(t, 0, dev.Live())
	assert.Empty(t, dev.InvalidOps)
}

func assertNearMat4(t *testing.T, want, got mgl32.Mat4, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}

func assertNearVec4(t *testing.T, want, got mgl32.Vec4, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
