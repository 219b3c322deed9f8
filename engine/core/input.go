package core

import "github.com/hubastard/gamelamp/engine/event"

// Input mirrors key, button and cursor state from the event stream. It only
// observes; it never marks events handled.
type Input struct {
	keys           map[event.Key]bool
	buttons        map[event.MouseButton]bool
	mouseX, mouseY float64
}

func NewInput() *Input {
	return &Input{keys: map[event.Key]bool{}, buttons: map[event.MouseButton]bool{}}
}

func (in *Input) Handle(ev event.Event) {
	switch e := ev.(type) {
	case *event.KeyPressedEvent:
		in.keys[e.Key] = true
	case *event.KeyReleasedEvent:
		in.keys[e.Key] = false
	case *event.MouseButtonPressedEvent:
		in.buttons[e.Button] = true
	case *event.MouseButtonReleasedEvent:
		in.buttons[e.Button] = false
	case *event.MouseMovedEvent:
		in.mouseX, in.mouseY = e.X, e.Y
	case *event.WindowLostFocusEvent:
		// Releases are not delivered to an unfocused window.
		clear(in.keys)
		clear(in.buttons)
	}
}

func (in *Input) IsKeyDown(k event.Key) bool                 { return in.keys[k] }
func (in *Input) IsMouseButtonDown(b event.MouseButton) bool { return in.buttons[b] }
func (in *Input) Mouse() (float64, float64)                  { return in.mouseX, in.mouseY }
