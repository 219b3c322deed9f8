// Package scene holds the 2D camera the sandbox layers draw through.
package scene

import "github.com/go-gl/mathgl/mgl32"

const minZoom = 0.05

// OrthoCamera2D is an orthographic camera centered on Position. Zoom 1 maps
// one world unit to one pixel.
type OrthoCamera2D struct {
	Position mgl32.Vec2
	Rotation float32 // radians
	Zoom     float32

	halfW, halfH float32
	vp           mgl32.Mat4
	dirty        bool
}

func NewOrtho2D(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Zoom: 1}
	c.SetViewportPixels(width, height)
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	c.halfW, c.halfH = float32(w)/2, float32(h)/2
	c.dirty = true
}

func (c *OrthoCamera2D) Width() float32  { return 2 * c.halfW }
func (c *OrthoCamera2D) Height() float32 { return 2 * c.halfH }

func (c *OrthoCamera2D) Move(dx, dy float32) {
	c.Position = c.Position.Add(mgl32.Vec2{dx, dy})
	c.dirty = true
}

func (c *OrthoCamera2D) Rotate(d float32) { c.Rotation += d; c.dirty = true }

func (c *OrthoCamera2D) SetZoom(z float32) {
	c.Zoom = max(z, minZoom)
	c.dirty = true
}

// VP is projection * view, recomputed only after a change.
func (c *OrthoCamera2D) VP() mgl32.Mat4 {
	if c.dirty || c.vp == (mgl32.Mat4{}) {
		c.recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) recalculate() {
	z := c.Zoom
	proj := mgl32.Ortho(-c.halfW/z, c.halfW/z, -c.halfH/z, c.halfH/z, -1, 1)
	view := mgl32.HomogRotate3DZ(-c.Rotation).Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), 0))
	c.vp = proj.Mul4(view)
	c.dirty = false
}
