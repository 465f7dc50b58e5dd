package loaders

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/brushwork/engine/core"
)

// Extensions lists the image file extensions ImageLoader understands.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsImage reports whether path has an image extension.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

/**
 * @brief Decodes image files into tightly packed RGBA pixels ready for upload.
 */
type ImageLoader struct {
	/** @brief Stores rows bottom-up as OpenGL expects. */
	FlipY bool
	/** @brief Images larger than this in either dimension are downscaled. 0 disables. */
	MaxSize int
}

func (il *ImageLoader) Load(path string) (*image.RGBA, error) {
	if !IsImage(path) {
		return nil, fmt.Errorf("%s: %w", path, core.ErrUnsupportedTextureExt)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := il.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image in any registered format and converts it.
func (il *ImageLoader) Decode(r io.Reader) (*image.RGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, core.ErrTextureDecode)
	}

	bounds := src.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), il.MaxSize)

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	} else {
		core.LogDebug("downscaling %s image from %dx%d to %dx%d", format, bounds.Dx(), bounds.Dy(), width, height)
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), src, bounds, draw.Src, nil)
	}

	if il.FlipY {
		flipRows(rgba)
	}
	return rgba, nil
}

// fit scales width and height down so neither exceeds limit, keeping the aspect ratio.
func fit(width, height, limit int) (int, int) {
	if limit <= 0 || (width <= limit && height <= limit) {
		return width, height
	}
	if width >= height {
		return limit, max(1, height*limit/width)
	}
	return max(1, width*limit/height), limit
}

func flipRows(img *image.RGBA) {
	rows := img.Bounds().Dy()
	row := make([]uint8, img.Stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : (top+1)*img.Stride]
		b := img.Pix[bottom*img.Stride : (bottom+1)*img.Stride]
		copy(row, a)
		copy(a, b)
		copy(b, row)
	}
}
