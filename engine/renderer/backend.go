package renderer

import (
	"github.com/spaghettifunk/cubana/engine/math"
	"github.com/spaghettifunk/cubana/engine/platform"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

// RendererBackend is the boundary to the GPU API. One implementation
// exists (webgpu); everything above it stays free of GPU types.
type RendererBackend interface {
	Initialize(appName string, width, height uint32, p *platform.Platform) error
	Shutdown() error
	// Resized reconfigures the presentation surface and recreates the depth
	// buffer (destroy-then-recreate) for the new pixel dimensions.
	Resized(width, height uint32) error

	// TextureCreate uploads the texture pixels and stores the GPU object in
	// texture.InternalData. Recreates on the same texture replace the old
	// GPU object (hot reload).
	TextureCreate(texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture) error

	// AcquireObjectResources creates the per-object uniform buffer and draw
	// binding against the given texture, returning their identifier.
	AcquireObjectResources(texture *metadata.Texture) (uint32, error)
	// RebindObjectTexture rebuilds an object's draw binding against the
	// texture's current GPU object, keeping its uniform buffer. Needed after
	// a texture is recreated by a hot reload.
	RebindObjectTexture(id uint32, texture *metadata.Texture) error
	// UpdateObjectUniform uploads the object's model-view-projection matrix
	// into its uniform storage.
	UpdateObjectUniform(id uint32, mvp math.Mat4) error

	BeginFrame(deltaTime float64) error
	// DrawObject binds the object's draw binding and issues its draw call.
	// Must be called between BeginFrame and EndFrame.
	DrawObject(id uint32) error
	// EndFrame submits the accumulated GPU work and presents.
	EndFrame(deltaTime float64) error
}
