package main

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/gamelamp/engine/colors"
	"github.com/hubastard/gamelamp/engine/core"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/logging"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/hubastard/gamelamp/engine/scene"
	"github.com/pkg/errors"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const flatVertexSrc = `
#version 330 core
layout(location = 0) in vec2 a_Position;
uniform mat4 u_ViewProjection;
uniform mat4 u_Transform;
void main() {
    gl_Position = u_ViewProjection * u_Transform * vec4(a_Position, 0.0, 1.0);
}
`

const flatFragmentSrc = `
#version 330 core
uniform vec4 u_Color;
out vec4 color;
void main() {
    color = u_Color;
}
`

const (
	quadSize   = 120 // pixels at zoom 1
	pulseLow   = 0.6
	pulseHigh  = 1.0
	pulseHalfT = 0.8 // seconds per half cycle
)

// ExampleLayer draws a pulsing quad through a WASD/scroll camera, logs key
// presses and stops the application on Escape.
type ExampleLayer struct {
	core.BaseLayer
	app *core.Application

	cam  *scene.OrthoCamera2D
	ctrl *scene.OrthoController2D

	quad   renderer.VertexArray
	shader renderer.Shader
	color  colors.Color

	fbW, fbH int // framebuffer size the camera was last fitted to

	pulse  *gween.Sequence
	scale  float32
	Paused bool

	last time.Time
}

func NewExampleLayer(app *core.Application) (*ExampleLayer, error) {
	w, h := app.FramebufferSize()
	l := &ExampleLayer{
		BaseLayer: core.NewBaseLayer("ExampleLayer"),
		app:       app,
		cam:       scene.NewOrtho2D(w, h),
		fbW:       w,
		fbH:       h,
		color:     colors.Yellow,
		scale:     pulseHigh,
		pulse: gween.NewSequence(
			gween.New(pulseHigh, pulseLow, pulseHalfT, ease.InOutQuad),
			gween.New(pulseLow, pulseHigh, pulseHalfT, ease.InOutQuad),
		),
	}
	l.ctrl = scene.NewOrthoController2D(l.cam)

	d := app.Device()
	va, err := d.NewVertexArray()
	if err != nil {
		return nil, errors.Wrap(err, "example quad")
	}
	vb, err := d.NewVertexBuffer([]float32{-0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5, 0.5})
	if err != nil {
		va.Delete()
		return nil, errors.Wrap(err, "example quad")
	}
	vb.SetLayout(renderer.NewBufferLayout(renderer.BufferElement{Name: "a_Position", Type: renderer.Float2}))
	if err := va.AddVertexBuffer(vb); err != nil {
		vb.Delete()
		va.Delete()
		return nil, errors.Wrap(err, "example quad")
	}
	ib, err := d.NewIndexBuffer([]uint32{0, 1, 2, 2, 3, 0})
	if err != nil {
		va.Delete()
		return nil, errors.Wrap(err, "example quad")
	}
	va.SetIndexBuffer(ib)
	l.quad = va

	if l.shader, err = d.NewShader(flatVertexSrc, flatFragmentSrc); err != nil {
		va.Delete()
		return nil, errors.Wrap(err, "example shader")
	}
	return l, nil
}

func (l *ExampleLayer) OnAttach() {
	l.last = time.Time{}
	logging.Logger().Info("example layer attached")
}

func (l *ExampleLayer) OnDetach() {
	l.shader.Delete()
	l.quad.Delete()
	logging.Logger().Info("example layer detached")
}

func (l *ExampleLayer) OnUpdate() {
	now := time.Now()
	var dt float32
	if !l.last.IsZero() {
		dt = float32(now.Sub(l.last).Seconds())
	}
	l.last = now
	l.step(dt)

	l.shader.Bind()
	l.shader.SetMat4("u_ViewProjection", l.cam.VP())
	l.shader.SetMat4("u_Transform", mgl32.Scale3D(quadSize*l.scale, quadSize*l.scale, 1))
	l.shader.SetFloat4("u_Color", l.color)
	l.app.Device().DrawIndexed(l.quad)
}

// step refits the camera to the framebuffer and advances the camera and the
// pulse by dt seconds.
func (l *ExampleLayer) step(dt float32) {
	if w, h := l.app.FramebufferSize(); w != l.fbW || h != l.fbH {
		l.fbW, l.fbH = w, h
		l.ctrl.Resize(w, h)
	}
	l.ctrl.Update(l.app.Input(), dt)
	if l.Paused {
		return
	}
	v, _, done := l.pulse.Update(dt)
	if done {
		l.pulse.Reset()
	}
	l.scale = v
}

func (l *ExampleLayer) OnEvent(e event.Event) {
	d := event.NewDispatcher(e)
	event.Dispatch(d, func(ev *event.KeyPressedEvent) bool {
		logging.Logger().Debug(ev.String())
		if ev.Key == event.KeyEscape {
			l.app.Stop()
			return true
		}
		return false
	})
	l.ctrl.OnEvent(e)
}
