package engine

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/cubana/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Directory that holds textures/ and other loadable assets.
	AssetsDir string `toml:"assets_dir"`
	// Upper bound on spawned objects.
	MaxObjects uint32 `toml:"max_objects"`
	// Texture names assignable to spawned objects. The first one is used
	// for the initial object.
	TextureNames []string `toml:"texture_names"`
	// Camera tuning.
	CameraMoveSpeed float32 `toml:"camera_move_speed"`
	CameraLookSpeed float32 `toml:"camera_look_speed"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:       100,
		StartPosY:       100,
		StartWidth:      1280,
		StartHeight:     720,
		Name:            "Cubana",
		LogLevel:        "info",
		AssetsDir:       "assets",
		MaxObjects:      1024,
		TextureNames:    []string{"crate", "bricks", "grass"},
		CameraMoveSpeed: 15.0,
		CameraLookSpeed: 1.6,
	}
}

// LoadApplicationConfig reads a TOML config file on top of the defaults.
// A missing file is not an error; the defaults are returned.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			core.LogDebug("no config file at '%s', using defaults", path)
			return config, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Level translates the configured log level name, defaulting to info.
func (c *ApplicationConfig) Level() core.LogLevel {
	switch c.LogLevel {
	case "debug":
		return core.DebugLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.InfoLevel
	}
}
