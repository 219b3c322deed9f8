package imgui

import (
	"os"

	"github.com/hubastard/gamelamp/engine/core"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// ParseFont builds a face from TrueType or OpenType data at size points
// (72 DPI, so points are pixels).
func ParseFont(data []byte, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, errors.Errorf("font size must be positive, got %v", size)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, errors.Wrap(err, "new face")
	}
	return face, nil
}

func LoadFont(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read font")
	}
	return ParseFont(data, size)
}

// SetFace replaces the widget font. Layout changes on the next frame.
func (c *Context) SetFace(face font.Face) {
	m := face.Metrics()
	c.face = face
	c.ascent = m.Ascent.Ceil()
	c.lineH = m.Height.Ceil()
}

// NewWithFace is New with a custom widget font.
func NewWithFace(face font.Face) func(*core.Application) (core.GUIOverlay, error) {
	return func(app *core.Application) (core.GUIOverlay, error) {
		o, err := New(app)
		if err != nil {
			return nil, err
		}
		o.(*Layer).ctx.SetFace(face)
		return o, nil
	}
}
