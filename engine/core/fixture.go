package core

import (
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/pkg/errors"
)

const (
	triangleVertexSrc = `
#version 330 core
layout(location = 0) in vec3 a_Position;
out vec3 v_Position;
void main() {
    v_Position = a_Position;
    gl_Position = vec4(a_Position, 1.0);
}
`
	triangleFragmentSrc = `
#version 330 core
layout(location = 0) out vec4 color;
in vec3 v_Position;
void main() {
    color = vec4(v_Position * 0.5 + 0.5, 1.0);
}
`
	triangleShaderName = "triangle"
)

var (
	triangleVertices = []float32{
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
		0.0, 0.5, 0.0,
	}
	triangleIndices = []uint32{0, 1, 2}
)

// newTriangle uploads the static triangle drawn behind every layer.
func newTriangle(d renderer.Device) (renderer.VertexArray, error) {
	va, err := d.NewVertexArray()
	if err != nil {
		return nil, errors.Wrap(err, "triangle vertex array")
	}
	vb, err := d.NewVertexBuffer(triangleVertices)
	if err != nil {
		va.Delete()
		return nil, errors.Wrap(err, "triangle vertex buffer")
	}
	vb.SetLayout(renderer.NewBufferLayout(
		renderer.BufferElement{Name: "a_Position", Type: renderer.Float3},
	))
	if err := va.AddVertexBuffer(vb); err != nil {
		vb.Delete()
		va.Delete()
		return nil, errors.Wrap(err, "triangle layout")
	}
	ib, err := d.NewIndexBuffer(triangleIndices)
	if err != nil {
		va.Delete()
		return nil, errors.Wrap(err, "triangle index buffer")
	}
	va.SetIndexBuffer(ib)
	return va, nil
}
