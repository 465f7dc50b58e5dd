package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/spaghettifunk/brushwork/engine/core"
)

// testImage is red in the top row and blue everywhere else.
func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA{B: 255, A: 255}
			if y == 0 {
				c = color.NRGBA{R: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(4, 2)))

	il := &ImageLoader{}
	img, err := il.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(3, 1))
}

func TestDecodeFlipY(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(3, 3)))

	il := &ImageLoader{FlipY: true}
	img, err := il.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(1, 2))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(1, 0))
}

func TestDecodeDownscales(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(16, 8)))

	il := &ImageLoader{MaxSize: 4}
	img, err := il.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
}

func TestDecodeGarbage(t *testing.T) {
	il := &ImageLoader{}
	_, err := il.Decode(bytes.NewReader([]byte("not an image")))
	assert.ErrorIs(t, err, core.ErrTextureDecode)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brick.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage(2, 2)))
	require.NoError(t, f.Close())

	il := &ImageLoader{}
	img, err := il.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	_, err = il.Load(filepath.Join(dir, "brick.tga"))
	assert.ErrorIs(t, err, core.ErrUnsupportedTextureExt)

	_, err = il.Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFit(t *testing.T) {
	for _, tc := range []struct {
		w, h, limit  int
		wantW, wantH int
	}{
		{64, 32, 0, 64, 32},
		{64, 32, 64, 64, 32},
		{64, 32, 16, 16, 8},
		{32, 64, 16, 8, 16},
		{1024, 1, 16, 16, 1},
	} {
		w, h := fit(tc.w, tc.h, tc.limit)
		assert.Equal(t, tc.wantW, w)
		assert.Equal(t, tc.wantH, h)
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("textures/stone.PNG"))
	assert.True(t, IsImage("a.webp"))
	assert.False(t, IsImage("a.mtr"))
	assert.False(t, IsImage("noext"))
}

func TestFalloff(t *testing.T) {
	radial := RadialFalloff(16)
	assert.Equal(t, image.Rect(0, 0, 16, 16), radial.Bounds())
	assert.Greater(t, radial.RGBAAt(8, 8).R, uint8(240))
	assert.Equal(t, uint8(0), radial.RGBAAt(0, 0).R)

	linear := LinearFalloff(8)
	assert.Equal(t, uint8(255), linear.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(0), linear.RGBAAt(7, 0).R)
}
