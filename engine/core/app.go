package core

import (
	"github.com/hubastard/gamelamp/engine/config"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/renderer"
)

// Window abstraction. The platform layer owns the native surface and message pump.
type Window interface {
	// SetEventCallback registers the single sink for platform events.
	SetEventCallback(cb func(event.Event))
	// OnUpdate presents the frame and pumps platform messages. The event
	// callback may run, synchronously, any number of times before it returns.
	OnUpdate()
	Size() (int, int)
	SetVSync(enabled bool)
	Destroy()
}

// Config wires the application to its collaborators.
type Config struct {
	Settings config.Config

	NewWindow func(config.Window) (Window, error)
	// NewDevice runs after the window exists, with its context current.
	NewDevice func(Window) (renderer.Device, error)
	// NewOverlay builds the GUI overlay. nil means a GUI-less overlay whose
	// Begin/End do nothing.
	NewOverlay func(*Application) (GUIOverlay, error)
}

// State of the run loop.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

type nopOverlay struct{ BaseLayer }

func (*nopOverlay) Begin() {}
func (*nopOverlay) End()   {}
