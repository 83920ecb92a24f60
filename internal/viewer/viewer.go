// Package viewer implements the main render loop of the model viewer.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/assets"
	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/gpu"
	"github.com/Faultbox/modelview/internal/engine/input"
	"github.com/Faultbox/modelview/internal/engine/mesh"
	"github.com/Faultbox/modelview/internal/engine/renderer"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/engine/shader"
	"github.com/Faultbox/modelview/internal/engine/window"
	"github.com/Faultbox/modelview/internal/logger"
)

// Viewer is the application instance.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	state    *State
}

// New opens the window and prepares everything needed to draw sc.
// On failure whatever was already created is released.
func New(cfg *config.Config, sc *scene.Scene, am *assets.Manager) (*Viewer, error) {
	if err := scene.Validate(sc); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	logger.Info("initializing viewer",
		zap.String("title", cfg.Viewer.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Stringer("scene_flags", sc.Flags),
	)
	if wantDiagnostics(cfg) {
		logger.Debug("scene hierarchy\n" + scene.Dump(sc.Root))
	}

	vertSrc, fragSrc, err := am.ShaderSources(cfg.Viewer.VertexShader, cfg.Viewer.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to read shaders: %w", err)
	}
	if hits, misses := am.Stats(); misses > 0 {
		logger.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
	}
	if wantDiagnostics(cfg) {
		logger.Debug("vertex shader source\n" + vertSrc)
		logger.Debug("fragment shader source\n" + fragSrc)
	}

	v := &Viewer{
		config: cfg,
		state:  NewState(cfg),
		input:  input.New(),
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Viewer.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		HideCursor: cfg.Viewer.HideCursor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Everything below needs the OpenGL context
	dev, err := gpu.NewGL()
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to initialize device: %w", err)
	}

	v.renderer, err = build(dev, sc, vertSrc, fragSrc, rendererConfig(cfg))
	if err != nil {
		v.window.Close()
		return nil, err
	}

	x, y := v.window.CursorPosition()
	v.input.SetRelative(v.window.CursorCaptured(), x, y)
	v.state.SetPointer(x, y)

	logger.Info("viewer initialized successfully")
	return v, nil
}

// build compiles the program, uploads the meshes and creates the renderer,
// unwinding on failure.
func build(dev gpu.Device, sc *scene.Scene, vertSrc, fragSrc string, cfg renderer.Config) (*renderer.Renderer, error) {
	prog, err := shader.BuildProgram(dev, vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to build shader program: %w", err)
	}

	meshes, err := mesh.UploadAll(dev, sc.Meshes)
	if err != nil {
		prog.Destroy()
		return nil, fmt.Errorf("failed to upload meshes: %w", err)
	}

	r, err := renderer.New(dev, prog, meshes, sc, cfg)
	if err != nil {
		meshes.Release()
		prog.Destroy()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r, nil
}

// wantDiagnostics reports whether the hierarchy dump and shader sources
// should be built. Both are large and only logged at debug level.
func wantDiagnostics(cfg *config.Config) bool {
	return cfg.Viewer.Debug && logger.DebugEnabled()
}

func rendererConfig(cfg *config.Config) renderer.Config {
	rc := renderer.DefaultConfig()
	rc.FOVDegrees = cfg.Graphics.FOVDegrees
	rc.Near = cfg.Graphics.Near
	rc.Far = cfg.Graphics.Far
	rc.ClearColor = vec4(cfg.Graphics.ClearColor, rc.ClearColor)
	return rc
}

// Run starts the render loop and returns when the viewer is asked to quit.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		fbWidth, fbHeight := v.window.FramebufferSize()

		// 1. Process input
		v.input.Update()
		for _, event := range v.input.Events() {
			if event.Type == input.EventWindowResize {
				fbWidth, fbHeight = v.window.FramebufferSize()
				winWidth, winHeight := v.window.GetSize()
				logger.Debug("window resized",
					zap.Int("width", winWidth),
					zap.Int("height", winHeight),
					zap.Int("framebuffer_width", fbWidth),
					zap.Int("framebuffer_height", fbHeight),
				)
				continue
			}
			v.state.Apply(event, fbWidth, fbHeight)
		}
		if v.state.Quit() {
			v.running = false
			break
		}

		// 2. Render
		v.renderer.Frame(fbWidth, fbHeight, v.state.Camera, v.state.Light, v.state.Spin)

		// 3. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Float32("spin", v.state.SpinDegrees()),
				zap.Stringer("eye", vecString(v.state.Camera.Eye)),
			)
			if v.config.Viewer.Debug {
				v.window.SetTitle(fmt.Sprintf("%s (%d fps, spin %.0f)", v.config.Viewer.Title, frameCount, v.state.SpinDegrees()))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		time.Sleep(v.config.Viewer.FrameDelay.Duration)
	}

	return nil
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

type vecString mgl32.Vec3

func (s vecString) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", s[0], s[1], s[2])
}
