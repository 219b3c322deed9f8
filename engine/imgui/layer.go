// Package imgui is the engine's immediate-mode debug UI. Layers build it
// every frame from OnImGuiRender:
//
//	func (l *StatsLayer) OnImGuiRender() {
//		ui := l.gui.UI()
//		ui.Panel("Stats")
//		ui.Text("%.2f ms", l.frameMS)
//		if ui.Button("Quit") {
//			l.app.Stop()
//		}
//	}
package imgui

import (
	"image"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/gamelamp/engine/core"
	"github.com/hubastard/gamelamp/engine/event"
	"github.com/hubastard/gamelamp/engine/logging"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/pkg/errors"
)

const vertexSrc = `
#version 330 core
layout(location = 0) in vec2 a_Pos;
uniform mat4 u_ViewProjection;
uniform vec4 u_Rect;
out vec2 v_UV;
void main() {
    v_UV = a_Pos;
    gl_Position = u_ViewProjection * vec4(u_Rect.xy + a_Pos * u_Rect.zw, 0.0, 1.0);
}
`

const fragmentSrc = `
#version 330 core
in vec2 v_UV;
uniform sampler2D u_Texture;
out vec4 color;
void main() {
    color = texture(u_Texture, v_UV);
}
`

// Layer is the GUI overlay. It owns the UI context and the GPU resources
// that put the rasterized panels on screen.
type Layer struct {
	core.BaseLayer
	app    *core.Application
	device renderer.Device
	ctx    *Context

	in      Input
	inFrame bool

	quad   renderer.VertexArray
	shader renderer.Shader
	tex    renderer.Texture
	canvas *image.NRGBA
	prev   []cmd
	bounds image.Rectangle
}

var _ core.GUIOverlay = (*Layer)(nil)

// New builds the overlay for app. It matches core.Config.NewOverlay.
func New(app *core.Application) (core.GUIOverlay, error) {
	l := &Layer{
		BaseLayer: core.NewBaseLayer("ImGuiLayer"),
		app:       app,
		device:    app.Device(),
		ctx:       NewContext(),
	}
	var err error
	if l.quad, err = newQuad(l.device); err != nil {
		return nil, err
	}
	if l.shader, err = l.device.NewShader(vertexSrc, fragmentSrc); err != nil {
		l.quad.Delete()
		return nil, errors.Wrap(err, "imgui shader")
	}
	return l, nil
}

// UI is the widget context; only valid between Begin and End.
func (l *Layer) UI() *Context { return l.ctx }

func (l *Layer) OnAttach() {
	logging.Logger().Debug("imgui attached")
}

// OnDetach releases the GPU resources; the layer is dead afterwards.
func (l *Layer) OnDetach() {
	if l.tex != nil {
		l.tex.Delete()
		l.tex = nil
	}
	if l.shader != nil {
		l.shader.Delete()
		l.shader = nil
	}
	if l.quad != nil {
		l.quad.Delete()
		l.quad = nil
	}
}

// OnEvent tracks the mouse and claims button and scroll events that land on
// a panel, so layers underneath never see clicks meant for the UI.
func (l *Layer) OnEvent(e event.Event) {
	switch ev := e.(type) {
	case *event.MouseMovedEvent:
		l.in.MouseX, l.in.MouseY = float32(ev.X), float32(ev.Y)
	case *event.MouseButtonPressedEvent:
		if ev.Button == event.MouseButtonLeft {
			l.in.MouseDown = true
			l.in.MousePressed = true
		}
		l.claim(e)
	case *event.MouseButtonReleasedEvent:
		if ev.Button == event.MouseButtonLeft {
			l.in.MouseDown = false
			l.in.MouseReleased = true
		}
		l.claim(e)
	case *event.MouseScrolledEvent:
		l.claim(e)
	}
}

func (l *Layer) claim(e event.Event) {
	if l.ctx.WantsMouse(l.in.MouseX, l.in.MouseY) {
		e.MarkHandled()
	}
}

// Begin opens the UI frame. Every Begin needs exactly one End.
func (l *Layer) Begin() {
	if l.inFrame {
		panic("imgui: Begin called twice without End")
	}
	l.inFrame = true
	l.ctx.NewFrame(l.in)
	l.in.MousePressed, l.in.MouseReleased = false, false
}

// End closes the UI frame and draws it over everything else.
func (l *Layer) End() {
	if !l.inFrame {
		panic("imgui: End without Begin")
	}
	l.inFrame = false
	bounds := l.ctx.EndFrame()
	if bounds.Empty() || l.shader == nil {
		return
	}

	if bounds != l.bounds || !l.ctx.sameAs(l.prev) {
		if err := l.upload(bounds); err != nil {
			logging.Logger().Warn("imgui upload failed", "err", err)
			return
		}
		l.prev = slices.Clone(l.ctx.cmds)
	}

	w, h := l.app.FramebufferSize()
	if w <= 0 || h <= 0 {
		return
	}
	l.shader.Bind()
	l.shader.SetMat4("u_ViewProjection", mgl32.Ortho2D(0, float32(w), float32(h), 0))
	l.shader.SetFloat4("u_Rect", [4]float32{
		float32(bounds.Min.X), float32(bounds.Min.Y),
		float32(bounds.Dx()), float32(bounds.Dy()),
	})
	l.shader.SetInt("u_Texture", 0)
	l.tex.BindSlot(0)
	l.device.DrawIndexed(l.quad)
}

// upload rasterizes the panels and pushes them into the texture, growing it
// when the panels no longer fit.
func (l *Layer) upload(bounds image.Rectangle) error {
	w, h := bounds.Dx(), bounds.Dy()
	if l.tex == nil || l.canvas.Rect.Dx() != w || l.canvas.Rect.Dy() != h {
		if l.tex != nil {
			l.tex.Delete()
			l.tex = nil
		}
		tex, err := l.device.NewTexture(w, h)
		if err != nil {
			return errors.Wrap(err, "imgui texture")
		}
		l.tex = tex
		l.canvas = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	l.ctx.Render(l.canvas, bounds.Min)
	l.bounds = bounds
	return l.tex.SetData(l.canvas.Pix)
}

func newQuad(d renderer.Device) (renderer.VertexArray, error) {
	va, err := d.NewVertexArray()
	if err != nil {
		return nil, errors.Wrap(err, "imgui quad")
	}
	vb, err := d.NewVertexBuffer([]float32{0, 0, 1, 0, 1, 1, 0, 1})
	if err != nil {
		va.Delete()
		return nil, errors.Wrap(err, "imgui quad")
	}
	vb.SetLayout(renderer.NewBufferLayout(renderer.BufferElement{Name: "a_Pos", Type: renderer.Float2}))
	if err := va.AddVertexBuffer(vb); err != nil {
		vb.Delete()
		va.Delete()
		return nil, errors.Wrap(err, "imgui quad")
	}
	ib, err := d.NewIndexBuffer([]uint32{0, 1, 2, 2, 3, 0})
	if err != nil {
		va.Delete()
		return nil, errors.Wrap(err, "imgui quad")
	}
	va.SetIndexBuffer(ib)
	return va, nil
}
