package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hubastard/gamelamp/engine/config"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/profiler"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T, h *harness) *Application {
	t.Helper()
	app, err := New(h.cfg)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func TestNewWiresCollaborators(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)

	assert.Equal(t, StateRunning, app.State())
	assert.Same(t, app, Current())
	assert.NotNil(t, h.win.cb, "event callback registered")
	assert.Equal(t, [4]int{0, 0, 640, 480}, h.dev.Viewport)
	assert.Equal(t, 1, h.dev.Shaders)
	assert.Same(t, h.overlay, app.ImGui())
	assert.Equal(t, 1, app.Layers().Overlays())
	assert.Equal(t, []string{"gui.attach"}, h.j.entries)
}

func TestSecondApplicationPanics(t *testing.T) {
	first := newApp(t, newHarness())

	assert.PanicsWithValue(t, ErrAlreadyRunning, func() {
		_, _ = New(newHarness().cfg)
	})
	assert.Same(t, first, Current())
}

func TestNewAfterCloseSucceeds(t *testing.T) {
	app, err := New(newHarness().cfg)
	require.NoError(t, err)
	app.Close()
	assert.Nil(t, Current())

	again := newApp(t, newHarness())
	assert.Same(t, again, Current())
}

func TestNewFailureReleasesGuard(t *testing.T) {
	h := newHarness()
	h.dev.ShaderErr = errors.New("bad glsl")

	app, err := New(h.cfg)
	assert.Nil(t, app)
	assert.ErrorContains(t, err, "bad glsl")
	assert.Nil(t, Current())
	assert.Equal(t, 1, h.win.destroyed)
	assert.Contains(t, h.j.entries, "gui.detach")
}

func TestNewRequiresFactories(t *testing.T) {
	_, err := New(Config{Settings: config.Default()})
	assert.Error(t, err)
	assert.Nil(t, Current())
}

func TestOverlayFactoryReturningNothingFails(t *testing.T) {
	h := newHarness()
	h.cfg.NewOverlay = func(*Application) (GUIOverlay, error) { return nil, nil }

	var app *Application
	var err error
	require.NotPanics(t, func() { app, err = New(h.cfg) })
	assert.Nil(t, app)
	assert.ErrorContains(t, err, "no overlay")
	assert.Nil(t, Current())
	assert.Equal(t, 1, h.win.destroyed)
}

func TestNilOverlayFactoryStillBrackets(t *testing.T) {
	h := newHarness()
	h.cfg.NewOverlay = nil
	h.win.pump = func(w *fakeWindow) { w.emit(event.NewWindowClose()) }
	app := newApp(t, h)

	app.Run()

	assert.Equal(t, uint64(1), app.Frames())
	assert.Equal(t, "gui", app.ImGui().Name())
}

func TestRunFrameOrder(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)
	app.PushLayer(newRecLayer(h.j, "A"))
	app.PushLayer(newRecLayer(h.j, "B"))
	h.win.pump = func(w *fakeWindow) { w.emit(event.NewWindowClose()) }
	h.j.entries = nil

	app.Run()

	assert.Equal(t, []string{
		"clear",
		"shader.bind 1",
		"draw 3",
		"A.update", "B.update", "gui.update",
		"gui.begin",
		"A.imgui", "B.imgui", "gui.imgui",
		"gui.end",
		"window.update",
	}, h.j.entries)
	assert.Equal(t, StateStopped, app.State())
}

func TestCloseEventFinishesCurrentFrame(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)
	a := newRecLayer(h.j, "A")
	app.PushLayer(a)
	h.win.pump = func(w *fakeWindow) {
		if w.updates == 3 {
			w.emit(event.NewWindowClose())
		}
	}

	app.Run()

	assert.Equal(t, uint64(3), app.Frames())
	assert.Equal(t, 3, h.win.updates)
	assert.Equal(t, 3, h.overlay.begins)
	assert.Equal(t, 3, h.overlay.ends)
	assert.Empty(t, a.seen, "close is consumed by the application")
}

func TestRunWhenStoppedDoesNothing(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)
	app.Stop()

	app.Run()

	assert.Zero(t, h.win.updates)
}

func TestOnEventResizeIsHandledByApplication(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)
	a := newRecLayer(h.j, "A")
	app.PushLayer(a)

	e := event.NewWindowResize(640, 640)
	h.win.emit(e)

	assert.True(t, e.Handled())
	assert.Empty(t, a.seen)
	assert.Empty(t, h.overlay.seen)
	assert.Equal(t, [4]int{0, 0, 640, 640}, h.dev.Viewport)
	w, hh := app.FramebufferSize()
	assert.Equal(t, 640, w)
	assert.Equal(t, 640, hh)
	assert.Equal(t, StateRunning, app.State())
}

func TestOnEventMinimizeKeepsViewport(t *testing.T) {
	h := newHarness()
	newApp(t, h)

	h.win.emit(event.NewWindowResize(0, 0))

	assert.Equal(t, [4]int{0, 0, 640, 480}, h.dev.Viewport)
}

func TestOnEventPropagatesTopDownUntilHandled(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)
	a, b, c := newRecLayer(h.j, "A"), newRecLayer(h.j, "B"), newRecLayer(h.j, "C")
	b.handles = event.TypeMouseButtonPressed
	app.PushLayer(a)
	app.PushLayer(b)
	app.PushOverlay(c)
	h.j.entries = nil

	click := event.NewMouseButtonPressed(event.MouseButtonLeft, event.ModNone)
	app.OnEvent(click)

	assert.Equal(t, []string{
		"C.event MouseButtonPressedEvent",
		"gui.event MouseButtonPressedEvent",
		"B.event MouseButtonPressedEvent",
	}, h.j.entries)
	assert.Empty(t, a.seen)
	assert.True(t, click.Handled())
}

func TestOnEventUnhandledReachesEveryLayer(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)
	a := newRecLayer(h.j, "A")
	app.PushLayer(a)

	key := event.NewKeyPressed(event.KeyW, event.ModNone, false)
	app.OnEvent(key)

	assert.Len(t, a.seen, 1)
	assert.Len(t, h.overlay.seen, 1)
	assert.False(t, key.Handled())
	assert.True(t, app.Input().IsKeyDown(event.KeyW))
}

func TestLayersPushedDuringPumpJoinNextFrame(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)
	late := newRecLayer(h.j, "late")
	h.win.pump = func(w *fakeWindow) {
		switch w.updates {
		case 1:
			app.PushLayer(late)
		case 2:
			w.emit(event.NewWindowClose())
		}
	}

	app.Run()

	count := 0
	for _, e := range h.j.entries {
		if e == "late.update" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestPopThroughApplication(t *testing.T) {
	h := newHarness()
	app := newApp(t, h)
	a := newRecLayer(h.j, "A")
	app.PushLayer(a)

	assert.True(t, app.PopLayer(a))
	assert.False(t, app.PopLayer(a))
	assert.False(t, app.PopOverlay(a))
	assert.True(t, app.PopOverlay(h.overlay))
	assert.Equal(t, 0, app.Layers().Len())
}

func TestCloseReleasesResourcesOnce(t *testing.T) {
	h := newHarness()
	app, err := New(h.cfg)
	require.NoError(t, err)
	app.PushLayer(newRecLayer(h.j, "A"))
	h.j.entries = nil

	app.Close()
	app.Close()

	assert.Equal(t, []string{"gui.detach", "A.detach", "window.destroy"}, h.j.entries)
	assert.Equal(t, 1, h.dev.Deleted["shader"])
	assert.Equal(t, 1, h.dev.Deleted["va"])
	assert.Equal(t, 1, h.dev.Deleted["vb"])
	assert.Equal(t, 1, h.dev.Deleted["ib"])
	assert.Equal(t, StateStopped, app.State())
}

func writeShaders(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.vert"), []byte("// vs "+body), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.frag"), []byte("// fs "+body), 0o644))
}

func TestShaderDirLoadsAndReloads(t *testing.T) {
	dir := t.TempDir()
	writeShaders(t, dir, "v1")

	h := newHarness()
	h.cfg.Settings.ShaderDir = dir
	app := newApp(t, h)
	require.Equal(t, 1, h.dev.Shaders)

	deadline := time.Now().Add(5 * time.Second)
	h.win.pump = func(w *fakeWindow) {
		if w.updates == 1 {
			writeShaders(t, dir, "v2")
		}
		if h.dev.Shaders >= 2 || time.Now().After(deadline) {
			w.emit(event.NewWindowClose())
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	app.Run()

	require.GreaterOrEqual(t, h.dev.Shaders, 2, "shader was not reloaded")
	assert.GreaterOrEqual(t, h.dev.Deleted["shader"], 1, "old program released")
}

func TestShaderDirMissingFilesFailsConstruction(t *testing.T) {
	h := newHarness()
	h.cfg.Settings.ShaderDir = t.TempDir()

	_, err := New(h.cfg)
	assert.ErrorContains(t, err, "triangle.vert")
	assert.Nil(t, Current())
}

func TestFrameIsProfiled(t *testing.T) {
	profiler.Enable(64)
	t.Cleanup(profiler.Disable)

	h := newHarness()
	h.win.pump = func(w *fakeWindow) { w.emit(event.NewWindowClose()) }
	newApp(t, h).Run()

	var buf bytes.Buffer
	require.NoError(t, profiler.Default().WriteSpeedscope(&buf))
	for _, scope := range []string{"Application.frame", "Layers.OnUpdate", "Layers.OnImGuiRender", "Window.OnUpdate"} {
		assert.Contains(t, buf.String(), `"name": "`+scope+`"`)
	}
}
