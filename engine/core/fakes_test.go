package core

import (
	"fmt"

	"github.com/hubastard/gamelamp/engine/config"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/hubastard/gamelamp/engine/renderer/renderertest"
)

// journal records calls from every fake in order.
type journal struct{ entries []string }

func (j *journal) add(format string, args ...any) {
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

type fakeWindow struct {
	j         *journal
	cb        func(event.Event)
	w, h      int
	vsync     bool
	updates   int
	destroyed int
	// pump runs inside OnUpdate, like a platform message pump.
	pump func(w *fakeWindow)
}

func (w *fakeWindow) SetEventCallback(cb func(event.Event)) { w.cb = cb }
func (w *fakeWindow) Size() (int, int)                      { return w.w, w.h }
func (w *fakeWindow) SetVSync(on bool)                      { w.vsync = on }
func (w *fakeWindow) Destroy()                              { w.destroyed++; w.j.add("window.destroy") }

func (w *fakeWindow) OnUpdate() {
	w.updates++
	w.j.add("window.update")
	if w.pump != nil {
		w.pump(w)
	}
}

func (w *fakeWindow) emit(e event.Event) { w.cb(e) }

// recLayer records every hook into the journal.
type recLayer struct {
	BaseLayer
	j *journal
	// handles marks events of this type handled.
	handles event.Type
	seen    []event.Event
}

func newRecLayer(j *journal, name string) *recLayer {
	return &recLayer{BaseLayer: NewBaseLayer(name), j: j}
}

func (l *recLayer) OnAttach()      { l.j.add("%s.attach", l.Name()) }
func (l *recLayer) OnDetach()      { l.j.add("%s.detach", l.Name()) }
func (l *recLayer) OnUpdate()      { l.j.add("%s.update", l.Name()) }
func (l *recLayer) OnImGuiRender() { l.j.add("%s.imgui", l.Name()) }
func (l *recLayer) OnEvent(e event.Event) {
	l.seen = append(l.seen, e)
	l.j.add("%s.event %s", l.Name(), e.Name())
	if l.handles != event.TypeNone && e.Type() == l.handles {
		e.MarkHandled()
	}
}

type recOverlay struct {
	*recLayer
	begins, ends int
}

func (o *recOverlay) Begin() { o.begins++; o.j.add("gui.begin") }
func (o *recOverlay) End()   { o.ends++; o.j.add("gui.end") }

type harness struct {
	j       *journal
	win     *fakeWindow
	dev     *renderertest.Device
	overlay *recOverlay
	cfg     Config
}

func newHarness() *harness {
	j := &journal{}
	h := &harness{
		j:   j,
		win: &fakeWindow{j: j, w: 640, h: 480},
		dev: renderertest.NewDevice(),
	}
	h.dev.Trace = func(s string) { j.add("%s", s) }
	h.overlay = &recOverlay{recLayer: newRecLayer(j, "gui")}
	h.cfg = Config{
		Settings:   config.Default(),
		NewWindow:  func(config.Window) (Window, error) { return h.win, nil },
		NewDevice:  func(Window) (renderer.Device, error) { return h.dev, nil },
		NewOverlay: func(*Application) (GUIOverlay, error) { return h.overlay, nil },
	}
	return h
}
