// Package glbackend implements the renderer primitives on OpenGL 3.3 core.
// Every call must happen on the goroutine that owns the GL context.
package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/gamelamp/engine/colors"
	"github.com/hubastard/gamelamp/engine/logging"
	"github.com/hubastard/gamelamp/engine/renderer"
	"github.com/pkg/errors"
)

// Device is the OpenGL renderer.Device. The context must already be current
// (the platform window makes it so).
type Device struct {
	vendor, name, version string
}

var _ renderer.Device = (*Device)(nil)

func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "init gl")
	}
	d := &Device{
		vendor:  gl.GoStr(gl.GetString(gl.VENDOR)),
		name:    gl.GoStr(gl.GetString(gl.RENDERER)),
		version: gl.GoStr(gl.GetString(gl.VERSION)),
	}
	logging.Logger().Info("opengl ready", "vendor", d.vendor, "renderer", d.name, "version", d.version)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return d, nil
}

func (d *Device) Vendor() string   { return d.vendor }
func (d *Device) Renderer() string { return d.name }
func (d *Device) Version() string  { return d.version }

func (d *Device) SetClearColor(c colors.Color) { gl.ClearColor(c[0], c[1], c[2], c[3]) }

func (d *Device) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

func (d *Device) SetViewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

func (d *Device) DrawIndexed(va renderer.VertexArray) {
	ib := va.IndexBuffer()
	if ib == nil {
		return
	}
	va.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(ib.Count()), gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (d *Device) NewVertexBuffer(vertices []float32) (renderer.VertexBuffer, error) {
	return newVertexBuffer(vertices)
}

func (d *Device) NewIndexBuffer(indices []uint32) (renderer.IndexBuffer, error) {
	return newIndexBuffer(indices)
}

func (d *Device) NewVertexArray() (renderer.VertexArray, error) {
	return newVertexArray(), nil
}

func (d *Device) NewShader(vertexSrc, fragmentSrc string) (renderer.Shader, error) {
	return newShader(vertexSrc, fragmentSrc)
}

func (d *Device) NewTexture(width, height int) (renderer.Texture, error) {
	return newTexture(width, height)
}
