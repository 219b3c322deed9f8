package platform

import (
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/gamelamp/engine/assets"
	"github.com/hubastard/gamelamp/engine/config"
	"github.com/hubastard/gamelamp/engine/core"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/logging"
	"github.com/pkg/errors"
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(event.Event)
}

var _ core.Window = (*GLFWWindow)(nil)

// NewGLFWWindow must be called on the main thread before any GL calls. It
// leaves the window's GL context current.
func NewGLFWWindow(cfg config.Window) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "init glfw")
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create glfw window")
	}
	win.MakeContextCurrent()

	gw := &GLFWWindow{w: win}
	gw.SetVSync(cfg.VSync)

	if cfg.Icon != "" {
		if icon, err := assets.LoadPNG(cfg.Icon); err != nil {
			logging.Logger().Warn("window icon not set", "err", err)
		} else {
			win.SetIcon([]image.Image{icon})
		}
	}

	// Callbacks -> translate to event.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(event.NewWindowClose()) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(event.NewWindowResize(w, h))
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if focused {
			gw.emit(event.NewWindowFocus())
		} else {
			gw.emit(event.NewWindowLostFocus())
		}
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == event.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press:
			gw.emit(event.NewKeyPressed(k, translateMods(mods), false))
		case glfw.Repeat:
			gw.emit(event.NewKeyPressed(k, translateMods(mods), true))
		case glfw.Release:
			gw.emit(event.NewKeyReleased(k, translateMods(mods)))
		}
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) { gw.emit(event.NewKeyTyped(r)) })
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		btn, ok := translateButton(b)
		if !ok {
			return
		}
		if action == glfw.Press {
			gw.emit(event.NewMouseButtonPressed(btn, translateMods(mods)))
		} else {
			gw.emit(event.NewMouseButtonReleased(btn, translateMods(mods)))
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.emit(event.NewMouseMoved(x, y))
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(event.NewMouseScrolled(xoff, yoff))
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev event.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// OnUpdate presents the back buffer, then pumps OS messages; callbacks fire
// synchronously from inside PollEvents.
func (g *GLFWWindow) OnUpdate() {
	g.w.SwapBuffers()
	glfw.PollEvents()
}

func (g *GLFWWindow) Size() (int, int)                      { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                     { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(event.Event)) { g.onEv = cb }

func (g *GLFWWindow) SetVSync(enabled bool) {
	if enabled {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (g *GLFWWindow) Destroy() {
	if g.w == nil {
		return
	}
	g.w.Destroy()
	g.w = nil
	glfw.Terminate()
}

var keyMap = map[glfw.Key]event.Key{
	glfw.KeyEscape:    event.KeyEscape,
	glfw.KeySpace:     event.KeySpace,
	glfw.KeyEnter:     event.KeyEnter,
	glfw.KeyTab:       event.KeyTab,
	glfw.KeyBackspace: event.KeyBackspace,
	glfw.KeyLeft:      event.KeyLeft,
	glfw.KeyRight:     event.KeyRight,
	glfw.KeyUp:        event.KeyUp,
	glfw.KeyDown:      event.KeyDown,
	glfw.KeyW:         event.KeyW,
	glfw.KeyA:         event.KeyA,
	glfw.KeyS:         event.KeyS,
	glfw.KeyD:         event.KeyD,
	glfw.KeyP:         event.KeyP,
	glfw.KeyF1:        event.KeyF1,
}

func translateKey(k glfw.Key) event.Key {
	if ek, ok := keyMap[k]; ok {
		return ek
	}
	return event.KeyUnknown
}

func translateButton(b glfw.MouseButton) (event.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return event.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return event.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return event.MouseButtonMiddle, true
	}
	return 0, false
}

func translateMods(m glfw.ModifierKey) event.Mod {
	var out event.Mod
	if m&glfw.ModShift != 0 {
		out |= event.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= event.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= event.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= event.ModSuper
	}
	return out
}
