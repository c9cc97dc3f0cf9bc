package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelines [pipelineVariantCount]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend
	logger      common.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU device, the window surface and its depth texture, and one
// render pipeline per PipelineVariant. A frame is BeginFrame, one or more DrawCall, EndFrame
// and Present. The Renderer also implements the loader's Uploader so assets can be moved
// onto the GPU through it.
type Renderer interface {
	// ConfigureSurface (re)configures the swapchain for the given size.
	// It does not touch the depth texture; call RecreateDepthTexture afterwards.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels, must be positive
	//   - height: the new height of the surface in pixels, must be positive
	//
	// Returns:
	//   - error: error if the size is not positive
	ConfigureSurface(width, height int) error

	// RecreateDepthTexture replaces the depth texture with one sized to the last configured surface.
	//
	// Returns:
	//   - error: error if the surface has never been configured or creation fails
	RecreateDepthTexture() error

	// SetPresentMode changes the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SurfaceFormat returns the swapchain texture format pipelines must render into.
	//
	// Returns:
	//   - wgpu.TextureFormat: the surface format
	SurfaceFormat() wgpu.TextureFormat

	// RegisterPipeline compiles p's shader, creates its GPU pipeline and stores it in the
	// slot for variant, releasing whatever pipeline occupied the slot before.
	//
	// Parameters:
	//   - variant: the slot to register into
	//   - p: the Pipeline to create
	//
	// Returns:
	//   - error: error if the variant is invalid, p is incomplete or GPU creation fails
	RegisterPipeline(variant PipelineVariant, p pipeline.Pipeline) error

	// Pipeline returns the pipeline registered for variant, or nil.
	//
	// Parameters:
	//   - variant: the slot to look up
	//
	// Returns:
	//   - pipeline.Pipeline: the registered pipeline or nil
	Pipeline(variant PipelineVariant) pipeline.Pipeline

	// InitMeshBuffers creates and fills the vertex and index buffers of a mesh.
	//
	// Parameters:
	//   - provider: receives the buffers and index count
	//   - vertexData: packed vertex bytes
	//   - indexData: packed uint32 indices
	//   - indexCount: number of indices
	//
	// Returns:
	//   - error: error if either slice is empty or buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer creates and fills the per-instance vertex buffer bound to slot 1.
	//
	// Parameters:
	//   - provider: receives the buffer and instance count
	//   - instanceData: packed instance bytes
	//   - instanceCount: number of instances
	//
	// Returns:
	//   - error: error if instanceData is empty or buffer creation fails
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceData []byte, instanceCount int) error

	// InitBindGroup creates the bind group layout and bind group described by descriptor.
	// Uniform buffers missing from the provider are created at their MinBindingSize.
	// Texture views and samplers must have been created beforehand.
	//
	// Parameters:
	//   - provider: the provider to populate
	//   - descriptor: the layout the bind group follows
	//
	// Returns:
	//   - error: error if a texture or sampler is missing or GPU creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads staged pixels to a new texture and stores its view at bindingKey.
	//
	// Parameters:
	//   - provider: the provider to store the view on
	//   - bindingKey: the binding index within the group
	//   - stagingData: the pixels, size and format
	//
	// Returns:
	//   - error: error if the texture is empty or GPU creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler and stores it at bindingKey. Zero fields of the staging
	// data select linear filtering and repeat addressing.
	//
	// Parameters:
	//   - provider: the provider to store the sampler on
	//   - bindingKey: the binding index within the group
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: error if GPU creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues uniform buffer writes. Writes to bindings without a buffer are skipped.
	//
	// Parameters:
	//   - writes: the writes to queue
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and opens the main render pass,
	// clearing colour and depth.
	//
	// Returns:
	//   - error: one of the surface sentinels when acquisition fails, see IsSurfaceRecoverable and IsFatal
	BeginFrame() error

	// DrawCall records one indexed, instanced draw of meshProvider with the pipeline
	// registered for variant. bindGroups are bound to groups 0..n-1 in order.
	//
	// Parameters:
	//   - variant: which pipeline to draw with
	//   - meshProvider: holds the vertex, index and instance buffers
	//   - bindGroups: the bind groups in group order
	//
	// Returns:
	//   - error: ErrPipelineNotRegistered, ErrNoFrame, or a missing-buffer error
	DrawCall(variant PipelineVariant, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame closes the render pass and submits the frame's commands.
	//
	// Returns:
	//   - error: ErrNoFrame outside a frame, or the encoder error
	EndFrame() error

	// Present shows the frame acquired by BeginFrame. Does nothing without one.
	Present()

	// Release frees every pipeline and GPU object the Renderer owns.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU device for surfaceSource and configures its surface at the
// source's current size.
//
// Parameters:
//   - backendType: the backend implementation to use
//   - surfaceSource: the window to draw into
//   - options: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the new renderer
//   - error: error if no adapter or device is available or the initial configuration fails
func NewRenderer(backendType RendererBackendType, surfaceSource SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		backend, err := newWGPURendererBackend(surfaceSource, r.forceFallbackAdapter, r.logger)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	default:
		return nil, fmt.Errorf("unsupported renderer backend %d", backendType)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if w, h := surfaceSource.Width(), surfaceSource.Height(); w > 0 && h > 0 {
		if err := r.ConfigureSurface(w, h); err != nil {
			r.Release()
			return nil, err
		}
		if err := r.RecreateDepthTexture(); err != nil {
			r.Release()
			return nil, err
		}
	}
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      common.NewNopLogger(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) ConfigureSurface(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) RecreateDepthTexture() error {
	return r.backend.RecreateDepthTexture()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SurfaceFormat() wgpu.TextureFormat {
	return r.backend.SurfaceFormat()
}

func (r *renderer) RegisterPipeline(variant PipelineVariant, p pipeline.Pipeline) error {
	if !variant.Valid() {
		return fmt.Errorf("invalid pipeline variant %d", variant)
	}
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return fmt.Errorf("failed to register %s pipeline: %w", variant, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old := r.pipelines[variant]; old != nil && old != p {
		old.Release()
	}
	r.pipelines[variant] = p
	r.logger.Infof("registered %s pipeline %q", variant, p.PipelineKey())
	return nil
}

func (r *renderer) Pipeline(variant PipelineVariant) pipeline.Pipeline {
	if !variant.Valid() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelines[variant]
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceData []byte, instanceCount int) error {
	return r.backend.InitInstanceBuffer(provider, instanceData, instanceCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	if len(writes) == 0 {
		return
	}
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(variant PipelineVariant, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(variant)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrPipelineNotRegistered, variant)
	}
	return r.backend.DrawCall(p, meshProvider, bindGroups)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for i, p := range r.pipelines {
		if p != nil {
			p.Release()
			r.pipelines[i] = nil
		}
	}
	r.mu.Unlock()

	if r.backend != nil {
		r.backend.Release()
	}
}
