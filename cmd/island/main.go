// Package main is the entry point for the island water demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/island/internal/app"
	"github.com/Faultbox/island/internal/config"
	"github.com/Faultbox/island/internal/engine/gfx/opengl"
	"github.com/Faultbox/island/internal/engine/window"
	"github.com/Faultbox/island/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		path, err := cfg.Save()
		if err != nil {
			logger.Error("saving config failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", path))
		logger.Sync()
		return
	}

	if err := run(cfg); err != nil {
		logger.Error("island demo failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("island demo closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Info("=== Island Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// The window must exist before OpenGL can be initialized.
	win, err := window.New(cfg.Window)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	dev, err := opengl.New()
	if err != nil {
		win.Close()
		return fmt.Errorf("initializing OpenGL: %w", err)
	}

	a, err := app.New(cfg, win, dev)
	if err != nil {
		win.Close()
		return err
	}
	defer a.Close()

	return a.Run()
}
