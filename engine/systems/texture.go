package systems

import (
	"fmt"

	"github.com/spaghettifunk/cubana/engine/assets"
	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

/** @brief The texture system configuration. */
type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be managed by the system. */
	MaxTextureCount uint32
}

// TextureSystem owns the texture registry. Every texture name is resolved
// at most once: a load failure registers the generated checkerboard under
// that name, so later acquires do not hit the filesystem again.
type TextureSystem struct {
	Config       *TextureSystemConfig
	assetManager *assets.AssetManager
	renderer     *RendererSystem

	registered map[string]*metadata.Texture
	// A default, non-registered texture that always exists as a fallback.
	DefaultTexture *metadata.Texture
}

func NewTextureSystem(config *TextureSystemConfig, am *assets.AssetManager, renderer *RendererSystem) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:       config,
		assetManager: am,
		renderer:     renderer,
		registered:   make(map[string]*metadata.Texture, config.MaxTextureCount),
	}, nil
}

// Initialize creates and uploads the default checkerboard texture.
// Requires the renderer to be initialized.
func (ts *TextureSystem) Initialize() error {
	ts.DefaultTexture = metadata.NewFallbackTexture(metadata.DEFAULT_TEXTURE_NAME)
	return ts.renderer.TextureCreate(ts.DefaultTexture)
}

func (ts *TextureSystem) Shutdown() error {
	for name, texture := range ts.registered {
		if err := ts.renderer.TextureDestroy(texture); err != nil {
			core.LogWarn("failed to destroy texture '%s': %v", name, err)
		}
		delete(ts.registered, name)
	}
	if ts.DefaultTexture != nil {
		return ts.renderer.TextureDestroy(ts.DefaultTexture)
	}
	return nil
}

/**
 * @brief Acquires a texture by name, loading and uploading it on first use.
 * A load failure is not an error: the slot falls back to the generated
 * checkerboard and a warning is logged.
 */
func (ts *TextureSystem) Acquire(name string) (*metadata.Texture, error) {
	if name == metadata.DEFAULT_TEXTURE_NAME {
		return ts.DefaultTexture, nil
	}
	if texture, ok := ts.registered[name]; ok {
		return texture, nil
	}
	if uint32(len(ts.registered)) >= ts.Config.MaxTextureCount {
		err := fmt.Errorf("func TextureSystemAcquire - texture count limit of %d reached", ts.Config.MaxTextureCount)
		core.LogError(err.Error())
		return nil, err
	}

	texture, err := ts.assetManager.LoadTexture(name)
	if err != nil {
		core.LogWarn("texture '%s' could not be loaded, using generated checkerboard: %v", name, err)
		texture = metadata.NewFallbackTexture(name)
	}
	if err := ts.renderer.TextureCreate(texture); err != nil {
		return nil, err
	}
	ts.registered[name] = texture
	return texture, nil
}

// Preload resolves every named texture slot up front, so the draw path
// never hits the filesystem mid-session. Slots that fail to load fall
// back per Acquire.
func (ts *TextureSystem) Preload(names []string) error {
	for _, name := range names {
		if _, err := ts.Acquire(name); err != nil {
			return err
		}
	}
	return nil
}

// IsRegistered reports whether a texture name has been acquired before.
func (ts *TextureSystem) IsRegistered(name string) bool {
	_, ok := ts.registered[name]
	return ok
}

// Reload re-reads a registered texture from disk and re-uploads it,
// bumping its generation. Called when the asset watcher reports a change.
func (ts *TextureSystem) Reload(name string) error {
	texture, ok := ts.registered[name]
	if !ok {
		return fmt.Errorf("texture '%s' is not registered", name)
	}
	loaded, err := ts.assetManager.LoadTexture(name)
	if err != nil {
		return err
	}
	texture.Width = loaded.Width
	texture.Height = loaded.Height
	texture.ChannelCount = loaded.ChannelCount
	texture.Pixels = loaded.Pixels
	return ts.renderer.TextureCreate(texture)
}
