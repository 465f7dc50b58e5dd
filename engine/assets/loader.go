package assets

import "image"

type Loader interface {
	Load(path string) (*image.RGBA, error)
}
