package config

import "github.com/urfave/cli"

// Overrides are command-line values applied on top of the config file.
// Zero values leave the file setting untouched.
type Overrides struct {
	ConfigPath     string
	Debug          bool
	Windowed       bool
	Fullscreen     bool
	Width          int
	Height         int
	VertexShader   string
	FragmentShader string
}

// Flags returns the command-line flags that feed Overrides.
func Flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: "config", Usage: "Path to config file (.yaml or .toml)"},
		cli.BoolFlag{Name: "debug", Usage: "Enable debug logging"},
		cli.BoolFlag{Name: "windowed", Usage: "Run in windowed mode"},
		cli.BoolFlag{Name: "fullscreen", Usage: "Run in fullscreen mode"},
		cli.IntFlag{Name: "width", Usage: "Window width"},
		cli.IntFlag{Name: "height", Usage: "Window height"},
		cli.StringFlag{Name: "vertex-shader", Usage: "Vertex shader source file"},
		cli.StringFlag{Name: "fragment-shader", Usage: "Fragment shader source file"},
	}
}

// OverridesFromContext reads the flags returned by Flags.
func OverridesFromContext(c *cli.Context) Overrides {
	return Overrides{
		ConfigPath:     c.String("config"),
		Debug:          c.Bool("debug"),
		Windowed:       c.Bool("windowed"),
		Fullscreen:     c.Bool("fullscreen"),
		Width:          c.Int("width"),
		Height:         c.Int("height"),
		VertexShader:   c.String("vertex-shader"),
		FragmentShader: c.String("fragment-shader"),
	}
}

// apply applies CLI overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
		cfg.Viewer.Debug = true
	}
	if o.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if o.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if o.Width > 0 {
		cfg.Graphics.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Graphics.Height = o.Height
	}
	if o.VertexShader != "" {
		cfg.Viewer.VertexShader = o.VertexShader
	}
	if o.FragmentShader != "" {
		cfg.Viewer.FragmentShader = o.FragmentShader
	}
}
