package imgui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func frameBounds(c *Context) image.Rectangle {
	c.NewFrame(Input{})
	quitButton(c)
	return c.EndFrame()
}

func TestParseFontChangesLayout(t *testing.T) {
	face, err := ParseFont(goregular.TTF, 24)
	require.NoError(t, err)

	c := NewContext()
	small := frameBounds(c)
	c.SetFace(face)
	large := frameBounds(c)

	assert.Greater(t, large.Dy(), small.Dy())
}

func TestParseFontErrors(t *testing.T) {
	_, err := ParseFont([]byte("not a font"), 12)
	assert.ErrorContains(t, err, "parse font")

	_, err = ParseFont(goregular.TTF, 0)
	assert.Error(t, err)

	_, err = LoadFont("does/not/exist.ttf", 12)
	assert.ErrorContains(t, err, "read font")
}
