package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/pkg/errors"
)

type vertexBuffer struct {
	id     uint32
	layout renderer.BufferLayout
}

func newVertexBuffer(verts []float32) (*vertexBuffer, error) {
	if len(verts) == 0 {
		return nil, errors.New("vertex buffer: no vertices")
	}
	vb := &vertexBuffer{}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vb, nil
}

func (vb *vertexBuffer) Bind()   { gl.BindBuffer(gl.ARRAY_BUFFER, vb.id) }
func (vb *vertexBuffer) Unbind() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }

func (vb *vertexBuffer) Delete() {
	if vb.id != 0 {
		gl.DeleteBuffers(1, &vb.id)
		vb.id = 0
	}
}

func (vb *vertexBuffer) SetLayout(l renderer.BufferLayout) { vb.layout = l }
func (vb *vertexBuffer) Layout() renderer.BufferLayout     { return vb.layout }

type indexBuffer struct {
	id    uint32
	count int
}

func newIndexBuffer(indices []uint32) (*indexBuffer, error) {
	if len(indices) == 0 {
		return nil, errors.New("index buffer: no indices")
	}
	ib := &indexBuffer{count: len(indices)}
	gl.GenBuffers(1, &ib.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return ib, nil
}

func (ib *indexBuffer) Bind()      { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id) }
func (ib *indexBuffer) Unbind()    { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0) }
func (ib *indexBuffer) Count() int { return ib.count }

func (ib *indexBuffer) Delete() {
	if ib.id != 0 {
		gl.DeleteBuffers(1, &ib.id)
		ib.id = 0
	}
}

// vertexArray owns the buffers attached to it; Delete releases them too.
type vertexArray struct {
	id   uint32
	next uint32 // next free attribute location
	vbs  []renderer.VertexBuffer
	ib   renderer.IndexBuffer
}

func newVertexArray() *vertexArray {
	va := &vertexArray{}
	gl.GenVertexArrays(1, &va.id)
	return va
}

func (va *vertexArray) Bind()   { gl.BindVertexArray(va.id) }
func (va *vertexArray) Unbind() { gl.BindVertexArray(0) }

func (va *vertexArray) AddVertexBuffer(vb renderer.VertexBuffer) error {
	layout := vb.Layout()
	if len(layout.Elements) == 0 {
		return errors.New("vertex array: vertex buffer has no layout")
	}
	gl.BindVertexArray(va.id)
	vb.Bind()
	for _, el := range layout.Elements {
		gl.EnableVertexAttribArray(va.next)
		gl.VertexAttribPointer(va.next, int32(el.Type.ComponentCount()), glType(el.Type),
			el.Normalized, int32(layout.Stride), gl.PtrOffset(el.Offset))
		va.next++
	}
	gl.BindVertexArray(0)
	vb.Unbind()
	va.vbs = append(va.vbs, vb)
	return nil
}

func (va *vertexArray) SetIndexBuffer(ib renderer.IndexBuffer) {
	gl.BindVertexArray(va.id)
	ib.Bind()
	gl.BindVertexArray(0)
	va.ib = ib
}

func (va *vertexArray) IndexBuffer() renderer.IndexBuffer { return va.ib }

func (va *vertexArray) Delete() {
	for _, vb := range va.vbs {
		vb.Delete()
	}
	va.vbs = nil
	if va.ib != nil {
		va.ib.Delete()
		va.ib = nil
	}
	if va.id != 0 {
		gl.DeleteVertexArrays(1, &va.id)
		va.id = 0
	}
}

func glType(t renderer.DataType) uint32 {
	if t == renderer.Int {
		return gl.INT
	}
	return gl.FLOAT
}
