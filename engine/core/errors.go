package core

import (
	"errors"
)

var (
	ErrIdentifierPoolEmpty   = errors.New("identifier pool has no ids to release")
	ErrIdentifierOutOfRange  = errors.New("identifier out of range")
	ErrConfigNotFound        = errors.New("configuration file not found")
	ErrConfigInvalid         = errors.New("invalid configuration")
	ErrPlatformInit          = errors.New("platform initialization failed")
	ErrWindowCreation        = errors.New("window creation failed")
	ErrGraphicsInit          = errors.New("graphics api initialization failed")
	ErrGraphicsCall          = errors.New("graphics api call failed")
	ErrTextureDecode         = errors.New("texture could not be decoded")
	ErrUnsupportedTextureExt = errors.New("unsupported texture file extension")
	ErrUnknown               = errors.New("unknown")
)
