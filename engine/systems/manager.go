package systems

import (
	"github.com/spaghettifunk/cubana/engine/assets"
	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/engine/renderer/components"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

// SystemManager wires the camera, texture and renderer systems together
// and is the single resource facade the rest of the engine talks to.
type SystemManager struct {
	cameraSystem   *CameraSystem
	textureSystem  *TextureSystem
	rendererSystem *RendererSystem

	// object resource ids per texture name, for rebinding after hot reloads
	objectsByTexture map[string][]uint32
}

func NewSystemManager(renderer *RendererSystem, am *assets.AssetManager) (*SystemManager, error) {
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 16,
	})
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 1024,
	}, am, renderer)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		cameraSystem:     cs,
		textureSystem:    ts,
		rendererSystem:   renderer,
		objectsByTexture: make(map[string][]uint32),
	}, nil
}

// Initialize brings up the renderer backend and the default texture.
func (sm *SystemManager) Initialize() error {
	if err := sm.rendererSystem.Initialize(); err != nil {
		return err
	}
	return sm.textureSystem.Initialize()
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.cameraSystem.Shutdown(); err != nil {
		core.LogError("failed to shutdown camera system: %v", err)
	}
	if err := sm.textureSystem.Shutdown(); err != nil {
		core.LogError("failed to shutdown texture system: %v", err)
	}
	return sm.rendererSystem.Shutdown()
}

// PreloadTextures loads every configured texture slot. Called once at
// startup, after Initialize.
func (sm *SystemManager) PreloadTextures(names []string) error {
	return sm.textureSystem.Preload(names)
}

func (sm *SystemManager) Renderer() *RendererSystem {
	return sm.rendererSystem
}

func (sm *SystemManager) DefaultCamera() *components.Camera {
	return sm.cameraSystem.DefaultCamera
}

// AcquireObjectResources resolves a texture name and creates the GPU
// resources for one object drawn with it.
func (sm *SystemManager) AcquireObjectResources(textureName string) (uint32, error) {
	texture, err := sm.textureSystem.Acquire(textureName)
	if err != nil {
		return metadata.InvalidID, err
	}
	id, err := sm.rendererSystem.AcquireObjectResources(texture)
	if err != nil {
		return metadata.InvalidID, err
	}
	sm.objectsByTexture[textureName] = append(sm.objectsByTexture[textureName], id)
	return id, nil
}

// HandleAssetChange reloads a changed texture and rebinds every object
// drawn with it. Changes to textures that were never acquired are ignored.
func (sm *SystemManager) HandleAssetChange(textureName string) {
	if !sm.textureSystem.IsRegistered(textureName) {
		return
	}
	if err := sm.textureSystem.Reload(textureName); err != nil {
		core.LogWarn("texture '%s' changed on disk but could not be reloaded: %v", textureName, err)
		return
	}
	texture, err := sm.textureSystem.Acquire(textureName)
	if err != nil {
		return
	}
	for _, id := range sm.objectsByTexture[textureName] {
		if err := sm.rendererSystem.RebindObjectTexture(id, texture); err != nil {
			core.LogWarn("failed to rebind object %d after reload of '%s': %v", id, textureName, err)
		}
	}
	core.LogInfo("texture '%s' hot reloaded", textureName)
}
