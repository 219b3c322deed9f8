package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/faiface/mainthread"
	"github.com/hubastard/gamelamp/engine/config"
	"github.com/hubastard/gamelamp/engine/core"
	glbackend "github.com/hubastard/gamelamp/engine/gfx/gl"
	"github.com/hubastard/gamelamp/engine/imgui"
	"github.com/hubastard/gamelamp/engine/logging"
	"github.com/hubastard/gamelamp/engine/platform"
	"github.com/hubastard/gamelamp/engine/profiler"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/pkg/errors"
)

var configPath = flag.String("config", "sandbox.yaml", "path to the sandbox config")

func main() {
	flag.Parse()
	// Info to stderr until run reads the configured level.
	setupLogging(os.Stderr, "info")
	mainthread.Run(func() {
		// GLFW and GL must live on the main thread.
		if err := mainthread.CallErr(run); err != nil {
			logFailure(err)
			os.Exit(1)
		}
	})
}

func logFailure(err error) { logging.Logger().Error("sandbox failed", "err", err) }

func setupLogging(w io.Writer, level string) {
	logging.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logging.ParseLevel(level),
	})))
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	setupLogging(os.Stderr, cfg.LogLevel)
	if cfg.Profile {
		profiler.Enable(1 << 16)
	}

	newOverlay := imgui.New
	if cfg.GUI.Font != "" {
		face, err := imgui.LoadFont(cfg.GUI.Font, cfg.GUI.FontSize)
		if err != nil {
			return errors.Wrap(err, "gui font")
		}
		newOverlay = imgui.NewWithFace(face)
	}

	app, err := core.New(core.Config{
		Settings: cfg,
		NewWindow: func(w config.Window) (core.Window, error) {
			return platform.NewGLFWWindow(w)
		},
		NewDevice: func(core.Window) (renderer.Device, error) {
			return glbackend.NewDevice()
		},
		NewOverlay: newOverlay,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	example, err := NewExampleLayer(app)
	if err != nil {
		return err
	}
	app.PushLayer(example)
	app.PushLayer(NewStatsLayer(app, example))

	app.Run()
	return nil
}
