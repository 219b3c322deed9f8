// Package renderertest provides an in-memory renderer.Device for tests that
// exercise the engine without a GL context.
package renderertest

import (
	"fmt"

	"github.com/hubastard/gamelamp/engine/colors"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/pkg/errors"
)

// Device records frame commands and resource lifetimes.
type Device struct {
	// Trace, when set, receives "clear", "draw <indices>" and
	// "shader.bind <id>" as they happen.
	Trace func(string)

	ClearColor colors.Color
	Viewport   [4]int
	Draws      int
	Shaders    int
	// ShaderErr makes NewShader fail.
	ShaderErr error
	Textures  []*Texture
	// Deleted counts Delete calls per kind: "vb", "ib", "va", "shader", "texture".
	Deleted map[string]int
}

var _ renderer.Device = (*Device)(nil)

func NewDevice() *Device { return &Device{Deleted: map[string]int{}} }

func (d *Device) trace(format string, args ...any) {
	if d.Trace != nil {
		d.Trace(fmt.Sprintf(format, args...))
	}
}

func (d *Device) SetClearColor(c colors.Color) { d.ClearColor = c }
func (d *Device) Clear()                       { d.trace("clear") }
func (d *Device) SetViewport(x, y, w, h int)   { d.Viewport = [4]int{x, y, w, h} }

func (d *Device) DrawIndexed(va renderer.VertexArray) {
	d.Draws++
	n := 0
	if ib := va.IndexBuffer(); ib != nil {
		n = ib.Count()
	}
	d.trace("draw %d", n)
}

func (d *Device) NewVertexBuffer(v []float32) (renderer.VertexBuffer, error) {
	if len(v) == 0 {
		return nil, errors.New("vertex buffer: no vertices")
	}
	return &VertexBuffer{d: d, Data: v}, nil
}

func (d *Device) NewIndexBuffer(idx []uint32) (renderer.IndexBuffer, error) {
	if len(idx) == 0 {
		return nil, errors.New("index buffer: no indices")
	}
	return &IndexBuffer{d: d, Indices: idx}, nil
}

func (d *Device) NewVertexArray() (renderer.VertexArray, error) {
	return &VertexArray{d: d}, nil
}

func (d *Device) NewShader(vs, fs string) (renderer.Shader, error) {
	if d.ShaderErr != nil {
		return nil, d.ShaderErr
	}
	d.Shaders++
	return &Shader{d: d, ID: d.Shaders, VertexSrc: vs, FragmentSrc: fs, Uniforms: map[string]any{}}, nil
}

func (d *Device) NewTexture(w, h int) (renderer.Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("texture: invalid size %dx%d", w, h)
	}
	t := &Texture{d: d, W: w, H: h}
	d.Textures = append(d.Textures, t)
	return t, nil
}

type VertexBuffer struct {
	d      *Device
	Data   []float32
	layout renderer.BufferLayout
}

func (b *VertexBuffer) Bind()                             {}
func (b *VertexBuffer) Unbind()                           {}
func (b *VertexBuffer) Delete()                           { b.d.Deleted["vb"]++ }
func (b *VertexBuffer) SetLayout(l renderer.BufferLayout) { b.layout = l }
func (b *VertexBuffer) Layout() renderer.BufferLayout     { return b.layout }

type IndexBuffer struct {
	d       *Device
	Indices []uint32
}

func (b *IndexBuffer) Bind()      {}
func (b *IndexBuffer) Unbind()    {}
func (b *IndexBuffer) Delete()    { b.d.Deleted["ib"]++ }
func (b *IndexBuffer) Count() int { return len(b.Indices) }

// VertexArray owns its buffers like the GL one does.
type VertexArray struct {
	d   *Device
	VBs []renderer.VertexBuffer
	ib  renderer.IndexBuffer
}

func (va *VertexArray) Bind()   {}
func (va *VertexArray) Unbind() {}

func (va *VertexArray) AddVertexBuffer(vb renderer.VertexBuffer) error {
	if len(vb.Layout().Elements) == 0 {
		return errors.New("vertex array: vertex buffer has no layout")
	}
	va.VBs = append(va.VBs, vb)
	return nil
}

func (va *VertexArray) SetIndexBuffer(ib renderer.IndexBuffer) { va.ib = ib }
func (va *VertexArray) IndexBuffer() renderer.IndexBuffer      { return va.ib }

func (va *VertexArray) Delete() {
	for _, vb := range va.VBs {
		vb.Delete()
	}
	if va.ib != nil {
		va.ib.Delete()
	}
	va.d.Deleted["va"]++
}

type Shader struct {
	d                      *Device
	ID                     int
	VertexSrc, FragmentSrc string
	Uniforms               map[string]any
}

func (s *Shader) Bind()                               { s.d.trace("shader.bind %d", s.ID) }
func (s *Shader) Unbind()                             {}
func (s *Shader) Delete()                             { s.d.Deleted["shader"]++ }
func (s *Shader) SetMat4(name string, m [16]float32)  { s.Uniforms[name] = m }
func (s *Shader) SetFloat4(name string, v [4]float32) { s.Uniforms[name] = v }
func (s *Shader) SetInt(name string, v int32)         { s.Uniforms[name] = v }

type Texture struct {
	d       *Device
	W, H    int
	Pix     []byte
	Uploads int
	Slot    int
}

func (t *Texture) Size() (int, int) { return t.W, t.H }

func (t *Texture) SetData(pix []byte) error {
	if len(pix) != t.W*t.H*4 {
		return errors.Errorf("texture: got %d bytes, want %d", len(pix), t.W*t.H*4)
	}
	t.Pix = append(t.Pix[:0], pix...)
	t.Uploads++
	return nil
}

func (t *Texture) BindSlot(slot int) { t.Slot = slot }
func (t *Texture) Delete()           { t.d.Deleted["texture"]++ }
