package systems

import (
	"github.com/spaghettifunk/cubana/engine/math"
	"github.com/spaghettifunk/cubana/engine/platform"
	"github.com/spaghettifunk/cubana/engine/renderer"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
	"github.com/spaghettifunk/cubana/engine/renderer/webgpu"
)

const (
	defaultFOVRadians = math.K_PI / 4.0
	defaultNearClip   = 0.1
	defaultFarClip    = 1000.0
)

type RendererSystem struct {
	backend renderer.RendererBackend

	// application
	AppName string

	// engine specific
	Platform *platform.Platform

	// The current window framebuffer width.
	FramebufferWidth uint32
	// The current window framebuffer height.
	FramebufferHeight uint32

	FOVRadians float32
	NearClip   float32
	FarClip    float32
}

func NewRendererSystem(appName string, appWidth, appHeight uint32, p *platform.Platform) (*RendererSystem, error) {
	return &RendererSystem{
		backend:           webgpu.New(),
		AppName:           appName,
		Platform:          p,
		FramebufferWidth:  appWidth,
		FramebufferHeight: appHeight,
		FOVRadians:        defaultFOVRadians,
		NearClip:          defaultNearClip,
		FarClip:           defaultFarClip,
	}, nil
}

func (r *RendererSystem) Initialize() error {
	return r.backend.Initialize(r.AppName, r.FramebufferWidth, r.FramebufferHeight, r.Platform)
}

func (r *RendererSystem) Shutdown() error {
	return r.backend.Shutdown()
}

// Projection returns the perspective projection for the current
// framebuffer aspect ratio.
func (r *RendererSystem) Projection() math.Mat4 {
	aspect := float32(r.FramebufferWidth) / float32(r.FramebufferHeight)
	return math.NewMat4Perspective(r.FOVRadians, aspect, r.NearClip, r.FarClip)
}

func (r *RendererSystem) OnResized(width, height uint32) error {
	r.FramebufferWidth = width
	r.FramebufferHeight = height
	return r.backend.Resized(width, height)
}

func (r *RendererSystem) TextureCreate(texture *metadata.Texture) error {
	return r.backend.TextureCreate(texture)
}

func (r *RendererSystem) TextureDestroy(texture *metadata.Texture) error {
	return r.backend.TextureDestroy(texture)
}

func (r *RendererSystem) AcquireObjectResources(texture *metadata.Texture) (uint32, error) {
	return r.backend.AcquireObjectResources(texture)
}

func (r *RendererSystem) RebindObjectTexture(id uint32, texture *metadata.Texture) error {
	return r.backend.RebindObjectTexture(id, texture)
}

// DrawFrame encodes and presents one frame. The model matrices in the
// packet are combined with the packet's view and projection here, so the
// GPU only ever sees the final transform per object.
func (r *RendererSystem) DrawFrame(packet *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		return err
	}
	viewProjection := packet.Projection.Mul(packet.View)
	var drawErr error
	for _, renderable := range packet.Renderables {
		mvp := viewProjection.Mul(renderable.Model)
		if err := r.backend.UpdateObjectUniform(renderable.ResourceID, mvp); err != nil {
			drawErr = err
			break
		}
		if err := r.backend.DrawObject(renderable.ResourceID); err != nil {
			drawErr = err
			break
		}
	}
	// The frame is always closed and presented, even when an object
	// failed, so the backend never carries an open pass into the next
	// BeginFrame.
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil && drawErr == nil {
		drawErr = err
	}
	return drawErr
}
