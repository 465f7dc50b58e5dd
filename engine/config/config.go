// Package config loads the brushwork configuration from TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

type Config struct {
	Window  WindowConfig   `toml:"window"`
	Logging LoggingConfig  `toml:"logging"`
	Render  RenderSettings `toml:"render"`
	Assets  AssetsConfig   `toml:"assets"`
}

type WindowConfig struct {
	// The application name used in windowing.
	Title string `toml:"title"`
	// Window starting position.
	X int `toml:"x"`
	Y int `toml:"y"`
	// Window starting size.
	Width  int  `toml:"width"`
	Height int  `toml:"height"`
	VSync  bool `toml:"vsync"`
}

type LoggingConfig struct {
	// One of debug, info, warn, error.
	Level string `toml:"level"`
}

/**
 * @brief The user facing render switches. They are turned into the global
 * state mask handed to the renderer every frame.
 */
type RenderSettings struct {
	Wireframe bool `toml:"wireframe"`
	Lighting  bool `toml:"lighting"`
	Textures  bool `toml:"textures"`
	/** @brief Forces the device back to defaults at the start of every frame. */
	ResetState bool `toml:"reset_state"`
	/** @brief Upper bound on frames per second. 0 means uncapped. */
	FrameCap    int        `toml:"frame_cap"`
	ClearColour [4]float32 `toml:"clear_colour"`
}

type AssetsConfig struct {
	Dir string `toml:"dir"`
}

/** @brief The configuration used when no file is given. */
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Brushwork",
			X:      100,
			Y:      100,
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Render: RenderSettings{
			Lighting:    true,
			Textures:    true,
			FrameCap:    60,
			ClearColour: [4]float32{0.2, 0.2, 0.2, 1},
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
	}
}

/**
 * @brief Reads the configuration at path. Keys missing from the file keep
 * their default value.
 */
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, core.ErrConfigNotFound)
	}
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%s: %w", strict.String(), core.ErrConfigInvalid)
		}
		return nil, fmt.Errorf("%s: %w", err, core.ErrConfigInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, core.ErrConfigInvalid)
	}
	if _, ok := core.ParseLogLevel(c.Logging.Level); !ok {
		return fmt.Errorf("log level '%s': %w", c.Logging.Level, core.ErrConfigInvalid)
	}
	if c.Render.FrameCap < 0 {
		return fmt.Errorf("frame cap %d: %w", c.Render.FrameCap, core.ErrConfigInvalid)
	}
	return nil
}

func (c *Config) LogLevel() core.LogLevel {
	level, _ := core.ParseLogLevel(c.Logging.Level)
	return level
}

/**
 * @brief The flags passes may enable under these settings. Wireframe drops
 * filled polygons together with everything that only matters for them.
 */
func (r RenderSettings) StateMask() metadata.RenderFlags {
	mask := metadata.RenderFlagsAll
	if !r.Textures {
		mask &^= metadata.RenderFlagTexture2D | metadata.RenderFlagTextureCubeMap
	}
	if !r.Lighting {
		mask &^= metadata.RenderFlagLighting | metadata.RenderFlagProgram
	}
	if r.Wireframe {
		mask &^= metadata.RenderFlagFill | metadata.RenderFlagLighting | metadata.RenderFlagProgram |
			metadata.RenderFlagTexture2D | metadata.RenderFlagTextureCubeMap | metadata.RenderFlagBlend
	}
	return mask
}
