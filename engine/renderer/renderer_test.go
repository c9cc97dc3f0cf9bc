package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	registered  []string
	registerErr error
	drawn       []string
	writes      int
	presentMode PresentMode
	released    bool
}

func (f *fakeBackend) ConfigureSurface(int, int) error                  { return nil }
func (f *fakeBackend) RecreateDepthTexture() error                      { return nil }
func (f *fakeBackend) SetPresentMode(mode PresentMode)                  { f.presentMode = mode }
func (f *fakeBackend) SurfaceFormat() wgpu.TextureFormat                { return wgpu.TextureFormatBGRA8UnormSrgb }
func (f *fakeBackend) BeginFrame() error                                { return nil }
func (f *fakeBackend) EndFrame() error                                  { return nil }
func (f *fakeBackend) Present()                                         {}
func (f *fakeBackend) Release()                                         { f.released = true }
func (f *fakeBackend) WriteBuffers(w []bind_group_provider.BufferWrite) { f.writes += len(w) }

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	if err := p.Validate(); err != nil {
		return err
	}
	f.registered = append(f.registered, p.PipelineKey())
	return nil
}

func (f *fakeBackend) InitMeshBuffers(bind_group_provider.BindGroupProvider, []byte, []byte, int) error {
	return nil
}

func (f *fakeBackend) InitInstanceBuffer(bind_group_provider.BindGroupProvider, []byte, int) error {
	return nil
}

func (f *fakeBackend) InitBindGroup(bind_group_provider.BindGroupProvider, wgpu.BindGroupLayoutDescriptor) error {
	return nil
}

func (f *fakeBackend) InitTextureView(bind_group_provider.BindGroupProvider, int, common.TextureStagingData) error {
	return nil
}

func (f *fakeBackend) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, _ bind_group_provider.BindGroupProvider, _ []bind_group_provider.BindGroupProvider) error {
	f.drawn = append(f.drawn, p.PipelineKey())
	return nil
}

func newTestRenderer(backend RendererBackend, options ...RendererBuilderOption) *renderer {
	r := newRenderer(BackendTypeWGPU, options...)
	r.backend = backend
	return r
}

func validPipeline(key string) pipeline.Pipeline {
	return pipeline.NewPipeline(key,
		pipeline.WithSource("@vertex fn vs_main() {}"),
		pipeline.WithVertexLayouts(wgpu.VertexBufferLayout{ArrayStride: 4}),
	)
}

func TestPipelineVariant(t *testing.T) {
	assert.Equal(t, PipelineExperimental, PipelineDefault.Toggle())
	assert.Equal(t, PipelineDefault, PipelineExperimental.Toggle())
	assert.Equal(t, PipelineDefault, PipelineDefault.Toggle().Toggle())

	assert.True(t, PipelineDefault.Valid())
	assert.True(t, PipelineExperimental.Valid())
	assert.False(t, PipelineVariant(-1).Valid())
	assert.False(t, pipelineVariantCount.Valid())

	assert.Equal(t, "default", PipelineDefault.String())
	assert.Equal(t, "experimental", PipelineExperimental.String())
	assert.Equal(t, "unknown", PipelineVariant(9).String())

	for _, v := range []PipelineVariant{PipelineDefault, PipelineExperimental} {
		got, ok := ParsePipelineVariant(v.String())
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	got, ok := ParsePipelineVariant("")
	assert.True(t, ok)
	assert.Equal(t, PipelineDefault, got)
	_, ok = ParsePipelineVariant("sepia")
	assert.False(t, ok)
}

func TestParsePresentMode(t *testing.T) {
	mode, ok := ParsePresentMode("uncapped")
	assert.True(t, ok)
	assert.Equal(t, PresentModeUncapped, mode)

	mode, ok = ParsePresentMode("")
	assert.True(t, ok)
	assert.Equal(t, PresentModeVSync, mode)

	_, ok = ParsePresentMode("triple")
	assert.False(t, ok)

	assert.Equal(t, "uncapped", PresentModeUncapped.String())
	assert.Equal(t, "vsync", PresentModeVSync.String())
}

func TestClassifySurfaceError(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"wgpu.(*Surface).GetCurrentTexture(): got status=Outdated", ErrSurfaceOutdated},
		{"surface status Lost", ErrSurfaceLost},
		{"status: Timeout", ErrSurfaceTimeout},
		{"OutOfMemory", ErrOutOfMemory},
		{"out of memory", ErrOutOfMemory},
		{"DeviceLost", ErrDeviceLost},
		{"device lost", ErrDeviceLost},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			raw := errors.New(tt.msg)
			err := classifySurfaceError(raw)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, raw)
		})
	}

	other := errors.New("validation error")
	assert.Same(t, other, classifySurfaceError(other))
	assert.NoError(t, classifySurfaceError(nil))
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsSurfaceRecoverable(ErrSurfaceOutdated))
	assert.True(t, IsSurfaceRecoverable(classifySurfaceError(errors.New("Lost"))))
	assert.False(t, IsSurfaceRecoverable(ErrSurfaceTimeout))
	assert.False(t, IsSurfaceRecoverable(classifySurfaceError(errors.New("DeviceLost"))))

	assert.True(t, IsFatal(ErrOutOfMemory))
	assert.True(t, IsFatal(classifySurfaceError(errors.New("DeviceLost"))))
	assert.False(t, IsFatal(ErrSurfaceLost))
	assert.False(t, IsFatal(nil))
}

func TestPickSurfaceFormat(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb,
		pickSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb}))
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm,
		pickSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm}))
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, pickSurfaceFormat(nil))
}

func TestPickPresentMode(t *testing.T) {
	supported := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate}
	assert.Equal(t, wgpu.PresentModeImmediate, pickPresentMode(supported, wgpu.PresentModeImmediate))
	assert.Equal(t, wgpu.PresentModeFifo, pickPresentMode([]wgpu.PresentMode{wgpu.PresentModeFifo}, wgpu.PresentModeImmediate))
}

func TestRegisterPipeline(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(backend)

	require.NoError(t, r.RegisterPipeline(PipelineDefault, validPipeline("lit")))
	require.NoError(t, r.RegisterPipeline(PipelineExperimental, validPipeline("bw")))
	assert.Equal(t, []string{"lit", "bw"}, backend.registered)
	assert.Equal(t, "bw", r.Pipeline(PipelineExperimental).PipelineKey())

	assert.Error(t, r.RegisterPipeline(pipelineVariantCount, validPipeline("x")))
	assert.Nil(t, r.Pipeline(PipelineVariant(-1)))

	err := r.RegisterPipeline(PipelineDefault, pipeline.NewPipeline("empty"))
	assert.ErrorIs(t, err, pipeline.ErrIncompletePipeline)
	assert.Equal(t, "lit", r.Pipeline(PipelineDefault).PipelineKey())

	backend.registerErr = errors.New("shader compile failed")
	assert.ErrorContains(t, r.RegisterPipeline(PipelineDefault, validPipeline("lit2")), "shader compile failed")
	assert.Equal(t, "lit", r.Pipeline(PipelineDefault).PipelineKey())
}

func TestDrawCall_ResolvesVariant(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(backend)
	mesh := bind_group_provider.NewBindGroupProvider("mesh")

	err := r.DrawCall(PipelineDefault, mesh, nil)
	assert.ErrorIs(t, err, ErrPipelineNotRegistered)

	require.NoError(t, r.RegisterPipeline(PipelineDefault, validPipeline("lit")))
	require.NoError(t, r.RegisterPipeline(PipelineExperimental, validPipeline("bw")))

	variant := PipelineDefault
	for range 3 {
		require.NoError(t, r.DrawCall(variant, mesh, nil))
		variant = variant.Toggle()
	}
	assert.Equal(t, []string{"lit", "bw", "lit"}, backend.drawn)
}

func TestRendererForwarding(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(backend, WithLogger(nil), WithPresentMode(PresentModeUncapped))
	assert.NotNil(t, r.logger)
	require.NotNil(t, r.pendingPresentMode)
	assert.Equal(t, PresentModeUncapped, *r.pendingPresentMode)

	r.SetPresentMode(PresentModeUncapped)
	assert.Equal(t, PresentModeUncapped, backend.presentMode)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, r.SurfaceFormat())

	r.WriteBuffers(nil)
	assert.Zero(t, backend.writes)
	r.WriteBuffers([]bind_group_provider.BufferWrite{{Binding: 0}, {Binding: 1}})
	assert.Equal(t, 2, backend.writes)

	require.NoError(t, r.RegisterPipeline(PipelineDefault, validPipeline("lit")))
	r.Release()
	assert.True(t, backend.released)
	assert.Nil(t, r.Pipeline(PipelineDefault))
}
