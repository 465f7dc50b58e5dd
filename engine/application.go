package engine

import (
	"image"

	"github.com/spaghettifunk/brushwork/engine/assets"
	"github.com/spaghettifunk/brushwork/engine/config"
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer"
	"github.com/spaghettifunk/brushwork/engine/renderer/components"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
	"github.com/spaghettifunk/brushwork/engine/renderer/opengl"
	"github.com/spaghettifunk/brushwork/engine/systems"
)

const (
	fieldOfView = 60.0
	nearClip    = 1.0
	farClip     = 8192.0
)

/**
 * @brief Everything the engine shares with the game callbacks.
 */
type Application struct {
	Config   *config.Config
	Renderer *renderer.Renderer
	Textures *opengl.Textures
	Assets   *assets.AssetManager
	Camera   *components.Camera
	Jobs     *systems.JobSystem

	Projection math.Mat4
	Width      int
	Height     int

	// set when something bound device state behind the renderer's back
	resetPending bool
}

/**
 * @brief Loads the image asset called name and uploads it. Loading the same
 * name again replaces the texture behind the existing handle.
 */
func (a *Application) LoadTexture(name string) (metadata.TextureHandle, error) {
	img, err := a.Assets.LoadImage(name)
	if err != nil {
		return 0, err
	}
	handle := a.Textures.Upload(name, img)
	a.resetPending = true
	return handle, nil
}

/**
 * @brief Decodes the image asset called name on a worker and uploads it between
 * frames. done is optional and runs on the frame loop goroutine.
 */
func (a *Application) LoadTextureAsync(name string, done func(handle metadata.TextureHandle, err error)) error {
	return a.Jobs.Submit(systems.JobTask{
		Run: func() (interface{}, error) {
			return a.Assets.LoadImage(name)
		},
		OnComplete: func(result interface{}) {
			handle := a.Textures.Upload(name, result.(*image.RGBA))
			a.resetPending = true
			if done != nil {
				done(handle, nil)
			}
		},
		OnFailure: func(err error) {
			if done != nil {
				done(0, err)
			}
		},
	})
}

func (a *Application) resize(width, height int) {
	a.Width = width
	a.Height = height
	a.Projection = projection(width, height)
}

func projection(width, height int) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.NewMat4Perspective(math.DegToRad(fieldOfView), aspect, nearClip, farClip)
}
