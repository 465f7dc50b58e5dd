package opengl

import (
	"image"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

/**
 * @brief Named GPU textures. Re-uploading a name keeps its handle so passes
 * referencing it pick up the new pixels without changes.
 *
 * Uploading binds textures behind the renderer's back; reset the renderer
 * state on the next frame after uploading.
 */
type Textures struct {
	handles map[string]metadata.TextureHandle
}

func NewTextures() *Textures {
	return &Textures{handles: make(map[string]metadata.TextureHandle)}
}

/**
 * @brief Uploads img as the 2D texture called name.
 * @return The handle of the texture.
 */
func (t *Textures) Upload(name string, img *image.RGBA) metadata.TextureHandle {
	handle, ok := t.handles[name]
	if !ok {
		var id uint32
		gl.GenTextures(1, &id)
		handle = metadata.TextureHandle(id)
		t.handles[name] = handle
	}

	bounds := img.Bounds()

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(handle))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		int32(bounds.Dx()),
		int32(bounds.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	core.LogDebug("uploaded texture '%s' (%dx%d) as %d", name, bounds.Dx(), bounds.Dy(), handle)
	return handle
}

// Handle looks a texture up by name.
func (t *Textures) Handle(name string) (metadata.TextureHandle, bool) {
	handle, ok := t.handles[name]
	return handle, ok
}

// Delete frees the texture called name, if any.
func (t *Textures) Delete(name string) {
	handle, ok := t.handles[name]
	if !ok {
		return
	}
	id := uint32(handle)
	gl.DeleteTextures(1, &id)
	delete(t.handles, name)
}

// Destroy frees every texture.
func (t *Textures) Destroy() {
	for name := range t.handles {
		t.Delete(name)
	}
}
