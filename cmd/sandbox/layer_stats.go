package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/hubastard/gamelamp/engine/core"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/imgui"
	"github.com/hubastard/gamelamp/engine/logging"
	"github.com/hubastard/gamelamp/engine/profiler"
	"github.com/pkg/browser"
)

// memEvery is how many frames the memory figures are held for.
const memEvery = 30

// gpuInfo is implemented by devices that know what they run on.
type gpuInfo interface {
	Renderer() string
	Version() string
}

// StatsLayer shows frame timing and lets the user pause or pop the example
// layer from the overlay.
type StatsLayer struct {
	core.BaseLayer
	app     *core.Application
	example *ExampleLayer

	last    time.Time
	frameMS float64
	mem     profiler.MemStats

	// openProfile shows a dumped capture; swapped in tests.
	openProfile func(path string) error
}

func NewStatsLayer(app *core.Application, example *ExampleLayer) *StatsLayer {
	return &StatsLayer{
		BaseLayer:   core.NewBaseLayer("StatsLayer"),
		app:         app,
		example:     example,
		openProfile: browser.OpenFile,
	}
}

func (l *StatsLayer) OnUpdate() {
	now := time.Now()
	if !l.last.IsZero() {
		l.frameMS = float64(now.Sub(l.last).Microseconds()) / 1000
	}
	l.last = now
	if l.app.Frames()%memEvery == 0 {
		l.mem = profiler.ReadMemStats()
	}
}

func (l *StatsLayer) OnImGuiRender() {
	gui, ok := l.app.ImGui().(*imgui.Layer)
	if !ok {
		return
	}
	ui := gui.UI()

	ui.Panel("Stats")
	ui.Text("%.2f ms/frame", l.frameMS)
	ui.Text("Frame %d", l.app.Frames())
	ui.Text("Layers: %d (%d overlays)", l.app.Layers().Len(), l.app.Layers().Overlays())
	ui.Separator()
	ui.Text("Heap: %.2f MB", float64(l.mem.HeapAlloc)/(1<<20))
	ui.Text("Goroutines: %d", l.mem.Goroutines)
	if gpu, ok := l.app.Device().(gpuInfo); ok {
		ui.Separator()
		ui.Text("GPU: %s", gpu.Renderer())
		ui.Text("GL: %s", gpu.Version())
	}

	if l.example == nil {
		return
	}
	ui.Panel("Example")
	pulse := !l.example.Paused
	if ui.Checkbox("Pulse", &pulse) {
		l.example.Paused = !pulse
	}
	if ui.Button("Pop example layer") && l.app.PopLayer(l.example) {
		l.example = nil
	}
}

// OnEvent dumps a profiler capture on Ctrl+P.
func (l *StatsLayer) OnEvent(e event.Event) {
	event.Dispatch(event.NewDispatcher(e), func(ev *event.KeyPressedEvent) bool {
		if ev.Key != event.KeyP || ev.Mods&event.ModCtrl == 0 {
			return false
		}
		l.dumpProfile()
		return true
	})
}

func (l *StatsLayer) dumpProfile() {
	log := logging.Logger()
	rec := profiler.Default()
	if rec == nil {
		log.Info("profiler disabled; set profile: true in the config")
		return
	}
	path := filepath.Join(os.TempDir(), "gamelamp.speedscope.json")
	if err := rec.WriteFile(path); err != nil {
		log.Warn("profile dump failed", "err", err)
		return
	}
	log.Info("profile written", "path", path)
	if err := l.openProfile(path); err != nil {
		log.Warn("open profile", "err", err)
	}
}
