// Package main is the entry point for the model viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/Faultbox/modelview/internal/assets"
	"github.com/Faultbox/modelview/internal/config"
	"github.com/Faultbox/modelview/internal/engine/importer"
	"github.com/Faultbox/modelview/internal/engine/scene"
	"github.com/Faultbox/modelview/internal/logger"
	"github.com/Faultbox/modelview/internal/viewer"
)

var errNoModel = errors.New("missing model file argument (or pass --quad)")

func main() {
	app := cli.NewApp()
	app.Name = "modelview"
	app.Usage = "display a glTF model with a free-look camera"
	app.ArgsUsage = "<model.gltf|model.glb>"
	app.Version = "0.1.0"
	app.Flags = append(config.Flags(),
		cli.BoolFlag{
			Name:  "quad",
			Usage: "render the built-in test quad instead of a model file",
		},
		cli.BoolFlag{
			Name:  "save-config",
			Usage: "write the effective configuration to the user config dir and exit",
		},
	)
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "modelview: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	modelPath := c.Args().First()
	if modelPath == "" && !c.Bool("quad") && !c.Bool("save-config") {
		cli.ShowAppHelp(c)
		return errNoModel
	}

	cfg, err := config.Load(config.OverridesFromContext(c))
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if err := logger.Init(logOptions(cfg.Logging)); err != nil {
		return fmt.Errorf("logger error: %w", err)
	}
	defer logger.Sync()

	logger.Info("=== modelview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if c.Bool("save-config") {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			return err
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return nil
	}

	var sc *scene.Scene
	if modelPath == "" {
		sc = scene.QuadScene()
	} else {
		sc, err = importer.Load(modelPath)
		if err != nil {
			logger.Error("failed to import model", zap.String("path", modelPath), zap.Error(err))
			return err
		}
	}

	am := assets.NewManager()
	defer am.Close()
	if dir := config.ConfigDir(); dirExists(dir) {
		if err := am.AddRoot(dir); err != nil {
			logger.Warn("ignoring config dir for assets", zap.Error(err))
		}
	}

	v, err := viewer.New(cfg, sc, am)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		return err
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return err
	}

	logger.Info("viewer closed normally")
	return nil
}

func logOptions(l config.LoggingConfig) logger.Options {
	return logger.Options{
		Level:   l.Level,
		Console: true,
		File: logger.FileConfig{
			Path:       l.LogFile,
			MaxSizeMB:  l.MaxSizeMB,
			MaxBackups: l.MaxBackups,
			MaxAgeDays: l.MaxAgeDays,
			Compress:   l.Compress,
		},
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
