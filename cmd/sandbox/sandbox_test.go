package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/gamelamp/engine/config"
	"github.com/hubastard/gamelamp/engine/core"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/imgui"
	"github.com/hubastard/gamelamp/engine/logging"
	"github.com/hubastard/gamelamp/engine/profiler"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/hubastard/gamelamp/engine/renderer/renderertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWindow struct {
	cb     func(event.Event)
	frames int
	pump   func(n int)
}

func (w *testWindow) SetEventCallback(cb func(event.Event)) { w.cb = cb }
func (w *testWindow) Size() (int, int)                      { return 640, 480 }
func (w *testWindow) SetVSync(bool)                         {}
func (w *testWindow) Destroy()                              {}
func (w *testWindow) OnUpdate() {
	w.frames++
	if w.pump != nil {
		w.pump(w.frames)
	}
}

type sandbox struct {
	app     *core.Application
	win     *testWindow
	dev     *renderertest.Device
	example *ExampleLayer
	stats   *StatsLayer
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	s := &sandbox{win: &testWindow{}, dev: renderertest.NewDevice()}
	app, err := core.New(core.Config{
		Settings:   config.Default(),
		NewWindow:  func(config.Window) (core.Window, error) { return s.win, nil },
		NewDevice:  func(core.Window) (renderer.Device, error) { return s.dev, nil },
		NewOverlay: imgui.New,
	})
	require.NoError(t, err)
	t.Cleanup(app.Close)
	s.app = app

	s.example, err = NewExampleLayer(app)
	require.NoError(t, err)
	s.stats = NewStatsLayer(app, s.example)
	app.PushLayer(s.example)
	app.PushLayer(s.stats)
	return s
}

func TestEscapeStopsTheSandbox(t *testing.T) {
	s := newSandbox(t)
	s.win.pump = func(n int) {
		if n == 3 {
			s.win.cb(event.NewKeyPressed(event.KeyEscape, event.ModNone, false))
		}
	}

	s.app.Run()

	assert.Equal(t, core.StateStopped, s.app.State())
	assert.Equal(t, uint64(3), s.app.Frames())
}

func TestOtherKeysAreNotConsumed(t *testing.T) {
	s := newSandbox(t)
	e := event.NewKeyPressed(event.KeyW, event.ModNone, false)

	s.app.OnEvent(e)

	assert.False(t, e.Handled())
	assert.True(t, s.app.Input().IsKeyDown(event.KeyW))
	assert.Equal(t, core.StateRunning, s.app.State())
}

func TestExampleLayerDrawsScaledQuad(t *testing.T) {
	s := newSandbox(t)
	s.win.pump = func(int) { s.app.Stop() }

	s.app.Run()

	sh := s.example.shader.(*renderertest.Shader)
	want := mgl32.Scale3D(quadSize*pulseHigh, quadSize*pulseHigh, 1)
	assert.Equal(t, [16]float32(want), sh.Uniforms["u_Transform"])
	assert.Contains(t, sh.Uniforms, "u_ViewProjection")
	assert.Equal(t, 3, s.dev.Draws, "triangle, example quad, overlay")
}

func TestCameraFollowsWindowResize(t *testing.T) {
	s := newSandbox(t)
	s.win.pump = func(n int) {
		switch n {
		case 1:
			s.win.cb(event.NewWindowResize(1280, 720))
		case 2:
			s.app.Stop()
		}
	}

	s.app.Run()

	assert.Equal(t, float32(1280), s.example.cam.Width())
	assert.Equal(t, float32(720), s.example.cam.Height())
}

func TestCameraKeepsSizeWhileMinimized(t *testing.T) {
	s := newSandbox(t)
	s.app.OnEvent(event.NewWindowResize(0, 0))

	s.example.step(0)

	assert.Equal(t, float32(640), s.example.cam.Width())
	assert.Equal(t, float32(480), s.example.cam.Height())
}

func TestPulse(t *testing.T) {
	s := newSandbox(t)

	s.example.step(pulseHalfT)
	assert.InDelta(t, pulseLow, s.example.scale, 1e-5)

	s.example.Paused = true
	s.example.step(pulseHalfT / 2)
	assert.InDelta(t, pulseLow, s.example.scale, 1e-5)

	s.example.Paused = false
	s.example.step(pulseHalfT)
	assert.InDelta(t, pulseHigh, s.example.scale, 1e-5)
}

func TestStatsPopsExampleLayer(t *testing.T) {
	s := newSandbox(t)
	gui := s.app.ImGui().(*imgui.Layer)
	s.win.pump = func(n int) {
		switch n {
		case 1:
			r, ok := gui.UI().Find("Pop example layer")
			require.True(t, ok)
			s.win.cb(event.NewMouseMoved(float64(r.Min.X+1), float64(r.Min.Y+1)))
			s.win.cb(event.NewMouseButtonPressed(event.MouseButtonLeft, event.ModNone))
			s.win.cb(event.NewMouseButtonReleased(event.MouseButtonLeft, event.ModNone))
		case 3:
			s.app.Stop()
		}
	}

	s.app.Run()

	assert.Nil(t, s.stats.example)
	assert.Equal(t, 2, s.app.Layers().Len(), "stats and overlay remain")
	assert.Equal(t, 1, s.dev.Deleted["va"], "example quad released")
}

func TestCtrlPDumpsProfile(t *testing.T) {
	s := newSandbox(t)
	var opened []string
	s.stats.openProfile = func(path string) error {
		opened = append(opened, path)
		return nil
	}

	ctrlP := event.NewKeyPressed(event.KeyP, event.ModCtrl, false)
	s.app.OnEvent(ctrlP)
	assert.True(t, ctrlP.Handled())
	assert.Empty(t, opened, "profiler disabled")

	profiler.Enable(64)
	t.Cleanup(profiler.Disable)
	s.win.pump = func(int) { s.app.Stop() }
	s.app.Run()

	s.app.OnEvent(event.NewKeyPressed(event.KeyP, event.ModCtrl, false))
	require.Len(t, opened, 1)
	assert.FileExists(t, opened[0])
}

func TestMalformedConfigIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [nope"), 0o644))
	prev := *configPath
	*configPath = path
	t.Cleanup(func() {
		*configPath = prev
		logging.SetLogger(nil)
	})

	var out bytes.Buffer
	setupLogging(&out, "info")
	err := run()
	require.Error(t, err)
	logFailure(err)

	assert.Contains(t, out.String(), "sandbox failed")
	assert.Contains(t, out.String(), "parse config")
	assert.Nil(t, core.Current(), "no application was created")
}
