package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFitKeepsAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 500))

	dst := Fit(src, 200)
	assert.Equal(t, 200, dst.Bounds().Dx())
	assert.Equal(t, 100, dst.Bounds().Dy())

	tall := Fit(image.NewRGBA(image.Rect(0, 0, 300, 600)), 200)
	assert.Equal(t, 100, tall.Bounds().Dx())
	assert.Equal(t, 200, tall.Bounds().Dy())
}

func TestFitLeavesSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 40))
	assert.Same(t, src, Fit(src, 200))
}

func TestToWebP(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 640, 320)), 256)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), 256)
	assert.ErrorIs(t, err, ErrUnsupported)
}
