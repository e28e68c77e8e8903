package webgpu

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/spaghettifunk/cubana/engine/core"
	m "github.com/spaghettifunk/cubana/engine/math"
	"github.com/spaghettifunk/cubana/engine/platform"
	"github.com/spaghettifunk/cubana/engine/renderer/metadata"
)

//go:embed cube.wgsl
var cubeShaderSource string

const depthFormat = wgpu.TextureFormatDepth32Float

// mvp matrix, 16 floats
const objectUniformSize = 16 * 4

type textureInternal struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

type objectResources struct {
	UniformBuffer *wgpu.Buffer
	BindGroup     *wgpu.BindGroup
}

// Backend renders through wgpu-native. All methods must be called from
// the main thread that owns the window.
type Backend struct {
	platform *platform.Platform

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration

	shader          *wgpu.ShaderModule
	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	sampler         *wgpu.Sampler

	vertexBuffer *wgpu.Buffer
	vertexCount  uint32

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	objects      map[uint32]*objectResources
	nextObjectID uint32

	// frame-scoped state between BeginFrame and EndFrame
	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
	encoder      *wgpu.CommandEncoder
	pass         *wgpu.RenderPassEncoder
}

func New() *Backend {
	return &Backend{
		objects: make(map[uint32]*objectResources),
	}
}

func (b *Backend) Initialize(appName string, width, height uint32, p *platform.Platform) error {
	b.platform = p

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(p.SurfaceDescriptor())

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: b.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("no suitable GPU adapter found: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("failed to create GPU device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	caps := b.surface.GetCapabilities(adapter)
	b.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       width,
		Height:      height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	b.surface.Configure(b.adapter, b.device, b.config)

	if err := b.createDepthResources(width, height); err != nil {
		return err
	}
	if err := b.createPipeline(appName); err != nil {
		return err
	}
	if err := b.createCubeGeometry(); err != nil {
		return err
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "cube-sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}

	core.LogInfo("WebGPU renderer initialized (%dx%d, format %d)", width, height, b.config.Format)
	return nil
}

func (b *Backend) createDepthResources(width, height uint32) error {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth-texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create depth texture view: %w", err)
	}
	b.depthTexture = tex
	b.depthView = view
	return nil
}

func (b *Backend) releaseDepthResources() {
	if b.depthView != nil {
		b.depthView.Release()
		b.depthView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Destroy()
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *Backend) createPipeline(appName string) error {
	shader, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "cube.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: cubeShaderSource},
	})
	if err != nil {
		return fmt.Errorf("failed to compile cube shader: %w", err)
	}
	b.shader = shader

	pipeline, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: appName + "-pipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(m.Vertex3DStride),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{
						Format:         wgpu.VertexFormatFloat32x3,
						Offset:         0,
						ShaderLocation: 0,
					},
					{
						Format:         wgpu.VertexFormatFloat32x2,
						Offset:         3 * 4,
						ShaderLocation: 1,
					},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
			StencilReadMask:  0xFFFFFFFF,
			StencilWriteMask: 0xFFFFFFFF,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    b.config.Format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create render pipeline: %w", err)
	}
	b.pipeline = pipeline
	b.bindGroupLayout = pipeline.GetBindGroupLayout(0)
	return nil
}

func (b *Backend) createCubeGeometry() error {
	cfg := metadata.GenerateUnitCubeConfig("cube")
	data := make([]float32, 0, cfg.VertexCount*5)
	for _, v := range cfg.Vertices {
		data = append(data, v.Position.X, v.Position.Y, v.Position.Z, v.Texcoord.X, v.Texcoord.Y)
	}
	buf, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "cube-vertices",
		Contents: wgpu.ToBytes(data),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return fmt.Errorf("failed to create cube vertex buffer: %w", err)
	}
	b.vertexBuffer = buf
	b.vertexCount = cfg.VertexCount
	return nil
}

func (b *Backend) Shutdown() error {
	for id, res := range b.objects {
		res.BindGroup.Release()
		res.UniformBuffer.Release()
		delete(b.objects, id)
	}
	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
	}
	b.releaseDepthResources()
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	if b.shader != nil {
		b.shader.Release()
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	b.config.Width = width
	b.config.Height = height
	b.surface.Configure(b.adapter, b.device, b.config)
	b.releaseDepthResources()
	return b.createDepthResources(width, height)
}

func (b *Backend) TextureCreate(texture *metadata.Texture) error {
	if internal, ok := texture.InternalData.(*textureInternal); ok && internal != nil {
		internal.View.Release()
		internal.Texture.Destroy()
		internal.Texture.Release()
		texture.InternalData = nil
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: texture.Name,
		Size: wgpu.Extent3D{
			Width:              texture.Width,
			Height:             texture.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create texture '%s': %w", texture.Name, err)
	}
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		texture.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  texture.Pitch(),
			RowsPerImage: texture.Height,
		},
		&wgpu.Extent3D{
			Width:              texture.Width,
			Height:             texture.Height,
			DepthOrArrayLayers: 1,
		},
	)
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create view for texture '%s': %w", texture.Name, err)
	}
	texture.InternalData = &textureInternal{Texture: tex, View: view}
	texture.Generation++
	return nil
}

func (b *Backend) TextureDestroy(texture *metadata.Texture) error {
	internal, ok := texture.InternalData.(*textureInternal)
	if !ok || internal == nil {
		return nil
	}
	internal.View.Release()
	internal.Texture.Destroy()
	internal.Texture.Release()
	texture.InternalData = nil
	return nil
}

func (b *Backend) AcquireObjectResources(texture *metadata.Texture) (uint32, error) {
	internal, ok := texture.InternalData.(*textureInternal)
	if !ok || internal == nil {
		return metadata.InvalidID, fmt.Errorf("texture '%s' has no GPU resources", texture.Name)
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "object-uniforms",
		Size:  objectUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return metadata.InvalidID, fmt.Errorf("failed to create object uniform buffer: %w", err)
	}
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "object-bind-group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    objectUniformSize,
			},
			{
				Binding:     1,
				TextureView: internal.View,
			},
			{
				Binding: 2,
				Sampler: b.sampler,
			},
		},
	})
	if err != nil {
		buf.Release()
		return metadata.InvalidID, fmt.Errorf("failed to create object bind group: %w", err)
	}

	id := b.nextObjectID
	b.nextObjectID++
	b.objects[id] = &objectResources{UniformBuffer: buf, BindGroup: bindGroup}
	return id, nil
}

// RebindObjectTexture rebuilds an object's draw binding against a new GPU
// texture, keeping its uniform buffer. Used after a texture hot reload.
func (b *Backend) RebindObjectTexture(id uint32, texture *metadata.Texture) error {
	res, ok := b.objects[id]
	if !ok {
		return fmt.Errorf("unknown object resource id %d", id)
	}
	internal, ok := texture.InternalData.(*textureInternal)
	if !ok || internal == nil {
		return fmt.Errorf("texture '%s' has no GPU resources", texture.Name)
	}
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "object-bind-group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  res.UniformBuffer,
				Offset:  0,
				Size:    objectUniformSize,
			},
			{
				Binding:     1,
				TextureView: internal.View,
			},
			{
				Binding: 2,
				Sampler: b.sampler,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to rebuild object bind group: %w", err)
	}
	res.BindGroup.Release()
	res.BindGroup = bindGroup
	return nil
}

func (b *Backend) UpdateObjectUniform(id uint32, mvp m.Mat4) error {
	res, ok := b.objects[id]
	if !ok {
		return fmt.Errorf("unknown object resource id %d", id)
	}
	return b.queue.WriteBuffer(res.UniformBuffer, 0, wgpu.ToBytes(mvp.Data[:]))
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	frameTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view, err := frameTexture.CreateView(nil)
	if err != nil {
		frameTexture.Release()
		return fmt.Errorf("failed to create surface texture view: %w", err)
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		frameTexture.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.1, G: 0.1, B: 0.2, A: 1.0},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthClearValue: 1.0,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
		},
	})
	pass.SetPipeline(b.pipeline)
	pass.SetVertexBuffer(0, b.vertexBuffer, 0, wgpu.WholeSize)

	b.frameTexture = frameTexture
	b.frameView = view
	b.encoder = encoder
	b.pass = pass
	return nil
}

func (b *Backend) DrawObject(id uint32) error {
	res, ok := b.objects[id]
	if !ok {
		return fmt.Errorf("unknown object resource id %d", id)
	}
	b.pass.SetBindGroup(0, res.BindGroup, nil)
	b.pass.Draw(b.vertexCount, 1, 0, 0)
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error {
	b.pass.End()
	b.pass.Release()
	b.pass = nil

	cmd, err := b.encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	b.queue.Submit(cmd)
	cmd.Release()
	b.encoder.Release()
	b.encoder = nil

	b.surface.Present()
	b.frameView.Release()
	b.frameView = nil
	b.frameTexture.Release()
	b.frameTexture = nil
	return nil
}
