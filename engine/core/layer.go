package core

import "github.com/hubastard/gamelamp/engine/event"

// Layer is one independently updated, rendered and event-handling unit of
// the frame. Layers never talk to each other through the stack.
type Layer interface {
	Name() string
	OnAttach()             // pushed onto the stack
	OnDetach()             // popped, or the stack is torn down
	OnUpdate()             // once per frame, forward order
	OnEvent(e event.Event) // reverse order; call e.MarkHandled to stop propagation
	OnImGuiRender()        // once per frame, between overlay Begin/End
}

// BaseLayer implements every hook as a no-op. Embed it and override what you need.
type BaseLayer struct {
	LayerName string
}

func NewBaseLayer(name string) BaseLayer { return BaseLayer{LayerName: name} }

func (b *BaseLayer) Name() string        { return b.LayerName }
func (b *BaseLayer) OnAttach()           {}
func (b *BaseLayer) OnDetach()           {}
func (b *BaseLayer) OnUpdate()           {}
func (b *BaseLayer) OnEvent(event.Event) {}
func (b *BaseLayer) OnImGuiRender()      {}

// GUIOverlay is the immediate-mode UI layer. The application brackets every
// frame's OnImGuiRender pass with exactly one Begin and one End.
type GUIOverlay interface {
	Layer
	Begin()
	End()
}
