// Package renderer declares the GPU primitives the engine core draws with.
// Backends (engine/gfx/gl) implement them; the core never calls a graphics
// API directly.
package renderer

import "github.com/hubastard/gamelamp/engine/colors"

// Device creates GPU resources and issues frame-level commands.
type Device interface {
	SetClearColor(c colors.Color)
	Clear()
	SetViewport(x, y, w, h int)
	// DrawIndexed draws va's index buffer as triangles.
	DrawIndexed(va VertexArray)

	NewVertexBuffer(vertices []float32) (VertexBuffer, error)
	NewIndexBuffer(indices []uint32) (IndexBuffer, error)
	NewVertexArray() (VertexArray, error)
	NewShader(vertexSrc, fragmentSrc string) (Shader, error)
	NewTexture(width, height int) (Texture, error)
}

// Bindable is anything that can be made current on the context.
type Bindable interface {
	Bind()
	Unbind()
}

// Resource is released exactly once with Delete.
type Resource interface {
	Delete()
}

type VertexBuffer interface {
	Bindable
	Resource
	SetLayout(l BufferLayout)
	Layout() BufferLayout
}

type IndexBuffer interface {
	Bindable
	Resource
	Count() int
}

// VertexArray binds vertex buffers to attribute slots and owns one index buffer.
type VertexArray interface {
	Bindable
	Resource
	AddVertexBuffer(vb VertexBuffer) error
	SetIndexBuffer(ib IndexBuffer)
	IndexBuffer() IndexBuffer
}

type Shader interface {
	Bindable
	Resource
	SetMat4(name string, m [16]float32)
	SetFloat4(name string, v [4]float32)
	SetInt(name string, v int32)
}

// Texture is an RGBA8 2D texture.
type Texture interface {
	Resource
	Size() (int, int)
	// SetData uploads tightly packed RGBA8 pixels (len == 4*w*h).
	SetData(pix []byte) error
	BindSlot(slot int)
}
