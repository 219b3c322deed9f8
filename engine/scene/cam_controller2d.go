package scene

import (
	"github.com/hubastard/gamelamp/engine/core"
	"github.com/hubastard/gamelamp/engine/event"
)

// OrthoController2D drives a camera: WASD pans, the scroll wheel zooms and
// window resizes refit the projection.
type OrthoController2D struct {
	MoveSpeed float32 // pixels per second at zoom 1
	ZoomStep  float32 // zoom factor per scroll notch
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{MoveSpeed: 200, ZoomStep: 1.1, Camera: cam}
}

func (cc *OrthoController2D) Update(in *core.Input, dt float32) {
	step := cc.MoveSpeed * dt / cc.Camera.Zoom
	if in.IsKeyDown(event.KeyW) {
		cc.Camera.Move(0, step)
	}
	if in.IsKeyDown(event.KeyS) {
		cc.Camera.Move(0, -step)
	}
	if in.IsKeyDown(event.KeyA) {
		cc.Camera.Move(-step, 0)
	}
	if in.IsKeyDown(event.KeyD) {
		cc.Camera.Move(step, 0)
	}
}

// OnEvent consumes scroll events. Resizes are observed but left unhandled so
// other layers can refit too. Layers under an Application never see resizes,
// which it handles itself; they call Resize from the framebuffer size instead.
func (cc *OrthoController2D) OnEvent(e event.Event) {
	d := event.NewDispatcher(e)
	event.Dispatch(d, func(ev *event.MouseScrolledEvent) bool {
		z := cc.Camera.Zoom
		switch {
		case ev.YOffset > 0:
			z *= cc.ZoomStep
		case ev.YOffset < 0:
			z /= cc.ZoomStep
		}
		cc.Camera.SetZoom(z)
		return true
	})
	event.Dispatch(d, func(ev *event.WindowResizeEvent) bool {
		cc.Resize(ev.Width, ev.Height)
		return false
	})
}

// Resize refits the projection to a w x h framebuffer. Empty sizes, reported
// by minimized windows, are ignored.
func (cc *OrthoController2D) Resize(w, h int) {
	if w > 0 && h > 0 {
		cc.Camera.SetViewportPixels(w, h)
	}
}
