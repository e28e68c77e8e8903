package systems

import (
	"fmt"

	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/engine/renderer/components"
)

type CameraSystem struct {
	Config  *CameraSystemConfig
	cameras map[string]*components.Camera
	// A default, non-registered camera that always exists as a fallback.
	DefaultCamera *components.Camera
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief The maximum number of cameras that can be managed by the system. */
	MaxCameraCount uint16
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config:        config,
		cameras:       make(map[string]*components.Camera, config.MaxCameraCount),
		DefaultCamera: components.NewCamera(),
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	return nil
}

/**
 * @brief Acquires a camera by name. If one is not found, a new one is
 * created and returned.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == components.DEFAULT_CAMERA_NAME {
		return cs.DefaultCamera, nil
	}
	if camera, ok := cs.cameras[name]; ok {
		return camera, nil
	}
	if uint16(len(cs.cameras)) >= cs.Config.MaxCameraCount {
		err := fmt.Errorf("func CameraSystemAcquire - camera count limit of %d reached", cs.Config.MaxCameraCount)
		core.LogError(err.Error())
		return nil, err
	}
	core.LogDebug("Creating new camera named '%s'...", name)
	camera := components.NewCamera()
	cs.cameras[name] = camera
	return camera, nil
}

/** @brief Releases a camera with the given name. */
func (cs *CameraSystem) Release(name string) {
	if name == components.DEFAULT_CAMERA_NAME {
		core.LogDebug("Cannot release default camera. Nothing was done.")
		return
	}
	if _, ok := cs.cameras[name]; !ok {
		core.LogWarn("CameraSystemRelease failed lookup. Nothing was done.")
		return
	}
	delete(cs.cameras, name)
}
