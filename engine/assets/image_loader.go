package assets

import (
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// LoadPNG decodes a PNG into a tightly packed RGBA image (stride == 4*w).
func LoadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode png %q", path)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img itself when it already is a tight *image.RGBA at the
// origin, otherwise a converted copy.
func ToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
