// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer" toml:"viewer"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Light    LightConfig    `yaml:"light" toml:"light"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int       `yaml:"width" toml:"width"`
	Height     int       `yaml:"height" toml:"height"`
	Fullscreen bool      `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool      `yaml:"vsync" toml:"vsync"`
	FOVDegrees float32   `yaml:"fov_degrees" toml:"fov_degrees"`
	Near       float32   `yaml:"near" toml:"near"`
	Far        float32   `yaml:"far" toml:"far"`
	ClearColor []float32 `yaml:"clear_color" toml:"clear_color"` // RGBA
}

// ViewerConfig holds application behaviour settings.
type ViewerConfig struct {
	Title          string   `yaml:"title" toml:"title"`
	VertexShader   string   `yaml:"vertex_shader" toml:"vertex_shader"`     // empty = built-in
	FragmentShader string   `yaml:"fragment_shader" toml:"fragment_shader"` // empty = built-in
	FrameDelay     Duration `yaml:"frame_delay" toml:"frame_delay"`
	Debug          bool     `yaml:"debug" toml:"debug"`
	HideCursor     bool     `yaml:"hide_cursor" toml:"hide_cursor"`
}

// CameraConfig holds the initial camera and interaction step sizes.
type CameraConfig struct {
	Eye             []float32 `yaml:"eye" toml:"eye"`
	LookAt          []float32 `yaml:"look_at" toml:"look_at"`
	MoveStep        float32   `yaml:"move_step" toml:"move_step"`
	OrbitDegrees    float32   `yaml:"orbit_degrees" toml:"orbit_degrees"`
	SpinStepDegrees float32   `yaml:"spin_step_degrees" toml:"spin_step_degrees"`
}

// LightConfig holds the initial point light.
type LightConfig struct {
	Position []float32 `yaml:"position" toml:"position"` // world space, w = 1
	Color    []float32 `yaml:"color" toml:"color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"` // empty = console only

	// Rotation of LogFile
	MaxSizeMB  int  `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool `yaml:"compress" toml:"compress"`
}

// Duration is a time.Duration written as a string such as "15ms".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FOVDegrees: 90,
			Near:       0.01,
			Far:        50,
			ClearColor: []float32{0.64, 0.93, 0.4, 1},
		},
		Viewer: ViewerConfig{
			Title:      "modelview",
			FrameDelay: Duration{15 * time.Millisecond},
			Debug:      true,
			HideCursor: true,
		},
		Camera: CameraConfig{
			Eye:             []float32{0, 0, 1},
			LookAt:          []float32{0, 0, 0},
			MoveStep:        0.1,
			OrbitDegrees:    30,
			SpinStepDegrees: 1,
		},
		Light: LightConfig{
			Position: []float32{0.5, 0.5, 0.5, 1},
			Color:    []float32{1, 1, 1, 1},
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate checks values that would make the viewer misbehave.
func (c *Config) Validate() error {
	var errs []error

	check := func(cond bool, format string, args ...any) {
		if !cond {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	g := c.Graphics
	check(g.Width > 0 && g.Height > 0, "graphics: size %dx%d must be positive", g.Width, g.Height)
	check(g.FOVDegrees > 0 && g.FOVDegrees < 180, "graphics.fov_degrees %v out of (0, 180)", g.FOVDegrees)
	check(g.Near > 0, "graphics.near %v must be positive", g.Near)
	check(g.Far > g.Near, "graphics.far %v must exceed near %v", g.Far, g.Near)
	check(len(g.ClearColor) == 4, "graphics.clear_color needs 4 components, got %d", len(g.ClearColor))

	check(c.Viewer.FrameDelay.Duration >= 0, "viewer.frame_delay %v is negative", c.Viewer.FrameDelay.Duration)

	check(len(c.Camera.Eye) == 3, "camera.eye needs 3 components, got %d", len(c.Camera.Eye))
	check(len(c.Camera.LookAt) == 3, "camera.look_at needs 3 components, got %d", len(c.Camera.LookAt))

	check(len(c.Light.Position) == 4, "light.position needs 4 components, got %d", len(c.Light.Position))
	check(len(c.Light.Color) == 4, "light.color needs 4 components, got %d", len(c.Light.Color))

	l := c.Logging
	check(l.MaxSizeMB >= 0 && l.MaxBackups >= 0 && l.MaxAgeDays >= 0,
		"logging: rotation limits must not be negative (%d MB, %d backups, %d days)", l.MaxSizeMB, l.MaxBackups, l.MaxAgeDays)

	return errors.Join(errs...)
}
