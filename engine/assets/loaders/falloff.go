package loaders

import (
	"image"
	"image/color"

	"github.com/spaghettifunk/brushwork/engine/math"
)

/**
 * @brief Generates a size x size light falloff texture: white at the centre
 * fading quadratically to black at the inscribed circle.
 */
func RadialFalloff(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float32(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.NewVec2((float32(x)+0.5-half)/half, (float32(y)+0.5-half)/half)
			v := 1 - (d.X*d.X + d.Y*d.Y)
			v = math.Clamp(v, 0, 1)
			c := uint8(v * v * 255)
			img.SetRGBA(x, y, color.RGBA{R: c, G: c, B: c, A: 255})
		}
	}
	return img
}

/**
 * @brief Generates a size x 1 ramp from white to black used for the light's
 * distance falloff along its Z axis.
 */
func LinearFalloff(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, 1))
	for x := 0; x < size; x++ {
		c := uint8(255 - x*255/max(1, size-1))
		img.SetRGBA(x, 0, color.RGBA{R: c, G: c, B: c, A: 255})
	}
	return img
}
