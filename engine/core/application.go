package core

import (
	"sync/atomic"

	"github.com/hubastard/gamelamp/engine/assets"
	"github.com/hubastard/gamelamp/engine/colors"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/logging"
	"github.com/hubastard/gamelamp/engine/profiler"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/pkg/errors"
)

// ErrAlreadyRunning is the panic value when a second Application is created
// while one is alive.
var ErrAlreadyRunning = errors.New("application already exists")

// instance guards the one-live-application invariant. The window callback is
// wired to exactly this value.
var instance atomic.Pointer[Application]

// Current returns the live application, or nil.
func Current() *Application { return instance.Load() }

// Application owns the window, the layer stack and the run loop. It lives on
// one goroutine: every method except Current must be called from the
// goroutine that called New.
type Application struct {
	window  Window
	device  renderer.Device
	layers  *LayerStack
	overlay GUIOverlay // also on the stack, which owns it
	input   *Input

	clear     colors.Color
	shaderDir string
	watcher   *assets.Watcher

	vertexArray renderer.VertexArray
	shader      renderer.Shader

	width, height int
	state         State
	frames        uint64
	closed        bool
}

// New builds the application and leaves it Running. Creating a second one
// while another is alive is a programming error and panics.
func New(cfg Config) (*Application, error) {
	a := &Application{
		layers:    NewLayerStack(),
		input:     NewInput(),
		clear:     cfg.Settings.ClearColor,
		shaderDir: cfg.Settings.ShaderDir,
		state:     StateInitializing,
	}
	if !instance.CompareAndSwap(nil, a) {
		logging.Logger().Error("application invariant violated", "err", ErrAlreadyRunning)
		panic(ErrAlreadyRunning)
	}

	if err := a.init(cfg); err != nil {
		a.Close()
		return nil, err
	}

	a.state = StateRunning
	return a, nil
}

func (a *Application) init(cfg Config) error {
	if cfg.NewWindow == nil || cfg.NewDevice == nil {
		return errors.New("application: NewWindow and NewDevice are required")
	}
	log := logging.Logger()

	win, err := cfg.NewWindow(cfg.Settings.Window)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	a.window = win
	a.width, a.height = win.Size()
	win.SetEventCallback(a.OnEvent)
	log.Info("window created", "title", cfg.Settings.Window.Title, "width", a.width, "height", a.height)

	if a.device, err = cfg.NewDevice(win); err != nil {
		return errors.Wrap(err, "create device")
	}
	a.device.SetViewport(0, 0, a.width, a.height)

	if cfg.NewOverlay != nil {
		if a.overlay, err = cfg.NewOverlay(a); err != nil {
			return errors.Wrap(err, "create gui overlay")
		}
		if a.overlay == nil {
			return errors.New("create gui overlay: factory returned no overlay")
		}
	} else {
		a.overlay = &nopOverlay{BaseLayer: NewBaseLayer("gui")}
	}
	a.PushOverlay(a.overlay)

	if a.vertexArray, err = newTriangle(a.device); err != nil {
		return err
	}
	if a.shader, err = a.loadShader(); err != nil {
		return err
	}

	if a.shaderDir != "" {
		if a.watcher, err = assets.NewWatcher(a.shaderDir); err != nil {
			// Hot reload is a convenience; run without it.
			log.Warn("shader hot reload disabled", "dir", a.shaderDir, "err", err)
			a.watcher = nil
		}
	}
	return nil
}

// loadShader compiles the triangle shader from shaderDir, or the built-in
// sources when no directory is configured.
func (a *Application) loadShader() (renderer.Shader, error) {
	vs, fs := triangleVertexSrc, triangleFragmentSrc
	if a.shaderDir != "" {
		var err error
		if vs, fs, err = assets.LoadShaderPair(a.shaderDir, triangleShaderName); err != nil {
			return nil, err
		}
	}
	sh, err := a.device.NewShader(vs, fs)
	if err != nil {
		return nil, errors.Wrap(err, "compile triangle shader")
	}
	return sh, nil
}

// Run drives frames until a window-close event stops the application. The
// frame in flight always completes before the state is checked again.
func (a *Application) Run() {
	log := logging.Logger()
	log.Info("run loop started")
	for a.state == StateRunning {
		a.frame()
	}
	log.Info("run loop exited", "frames", a.frames)
}

func (a *Application) frame() {
	defer profiler.Start("Application.frame")()
	a.pollShaderReload()

	a.device.SetClearColor(a.clear)
	a.device.Clear()

	a.shader.Bind()
	a.device.DrawIndexed(a.vertexArray)

	end := profiler.Start("Layers.OnUpdate")
	for l := range a.layers.All() {
		l.OnUpdate()
	}
	end()

	end = profiler.Start("Layers.OnImGuiRender")
	a.overlay.Begin()
	for l := range a.layers.All() {
		l.OnImGuiRender()
	}
	a.overlay.End()
	end()

	end = profiler.Start("Window.OnUpdate")
	a.window.OnUpdate()
	end()
	a.frames++
}

// OnEvent is the window's event sink. Window events are dispatched to the
// application first; whatever stays unhandled goes to the layers, topmost
// first, until one marks it handled.
func (a *Application) OnEvent(e event.Event) {
	a.input.Handle(e)

	d := event.NewDispatcher(e)
	event.Dispatch(d, a.onWindowClose)
	event.Dispatch(d, a.onWindowResize)

	for l := range a.layers.Backward() {
		if e.Handled() {
			break
		}
		l.OnEvent(e)
	}
}

func (a *Application) onWindowClose(*event.WindowCloseEvent) bool {
	a.Stop()
	return true
}

func (a *Application) onWindowResize(e *event.WindowResizeEvent) bool {
	logging.Logger().Debug(e.String())
	a.width, a.height = e.Width, e.Height
	if e.Width > 0 && e.Height > 0 { // minimized windows report 0x0
		a.device.SetViewport(0, 0, e.Width, e.Height)
	}
	return true
}

func (a *Application) pollShaderReload() {
	if a.watcher == nil {
		return
	}
	changed := false
	for drained := false; !drained; {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			logging.Logger().Debug("shader changed", "path", path)
			changed = true
		case err, ok := <-a.watcher.Errors:
			if !ok {
				a.watcher = nil
				return
			}
			logging.Logger().Warn("shader watcher", "err", err)
		default:
			drained = true
		}
	}
	if !changed {
		return
	}
	sh, err := a.loadShader()
	if err != nil {
		// Keep drawing with the last good program.
		logging.Logger().Warn("shader reload failed", "err", err)
		return
	}
	a.shader.Delete()
	a.shader = sh
	logging.Logger().Info("shader reloaded", "dir", a.shaderDir)
}

// Stop asks the run loop to exit after the current frame.
func (a *Application) Stop() {
	if a.state != StateStopped {
		a.state = StateStopped
		logging.Logger().Info("application stopping")
	}
}

func (a *Application) PushLayer(l Layer)           { a.layers.PushLayer(l) }
func (a *Application) PushOverlay(l Layer)         { a.layers.PushOverlay(l) }
func (a *Application) PopLayer(l Layer) bool       { return a.layers.PopLayer(l) }
func (a *Application) PopOverlay(l Layer) bool     { return a.layers.PopOverlay(l) }
func (a *Application) Layers() *LayerStack         { return a.layers }
func (a *Application) Window() Window              { return a.window }
func (a *Application) Device() renderer.Device     { return a.device }
func (a *Application) Input() *Input               { return a.input }
func (a *Application) ImGui() GUIOverlay           { return a.overlay }
func (a *Application) State() State                { return a.state }
func (a *Application) Frames() uint64              { return a.frames }
func (a *Application) FramebufferSize() (int, int) { return a.width, a.height }

// Close tears everything down in reverse order of construction: layers,
// renderer resources, window. Afterwards a new Application may be created.
// Close is idempotent.
func (a *Application) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.state = StateStopped

	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
	a.layers.Close()
	a.overlay = nil
	if a.shader != nil {
		a.shader.Delete()
		a.shader = nil
	}
	if a.vertexArray != nil {
		a.vertexArray.Delete()
		a.vertexArray = nil
	}
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
	instance.CompareAndSwap(a, nil)
	logging.Logger().Info("application closed")
}
