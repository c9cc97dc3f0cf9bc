package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/model"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawCall struct {
	variant    renderer.PipelineVariant
	mesh       bind_group_provider.BindGroupProvider
	bindGroups []bind_group_provider.BindGroupProvider
}

// fakeRenderer records the calls the State makes and fails on demand.
type fakeRenderer struct {
	calls      []string
	configured [][2]int
	bindGroups []string
	writes     []bind_group_provider.BufferWrite
	draws      []drawCall

	beginErrs []error
	drawErr   error
	endErr    error
}

func (f *fakeRenderer) ConfigureSurface(w, h int) error {
	f.calls = append(f.calls, "configure")
	f.configured = append(f.configured, [2]int{w, h})
	return nil
}

func (f *fakeRenderer) RecreateDepthTexture() error {
	f.calls = append(f.calls, "depth")
	return nil
}

func (f *fakeRenderer) InitBindGroup(p bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor) error {
	f.bindGroups = append(f.bindGroups, p.Label())
	return nil
}

func (f *fakeRenderer) WriteBuffers(w []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, w...)
}

func (f *fakeRenderer) BeginFrame() error {
	f.calls = append(f.calls, "begin")
	if len(f.beginErrs) > 0 {
		err := f.beginErrs[0]
		f.beginErrs = f.beginErrs[1:]
		return err
	}
	return nil
}

func (f *fakeRenderer) DrawCall(v renderer.PipelineVariant, mesh bind_group_provider.BindGroupProvider, bg []bind_group_provider.BindGroupProvider) error {
	f.calls = append(f.calls, "draw")
	f.draws = append(f.draws, drawCall{variant: v, mesh: mesh, bindGroups: bg})
	return f.drawErr
}

func (f *fakeRenderer) EndFrame() error {
	f.calls = append(f.calls, "end")
	return f.endErr
}

func (f *fakeRenderer) Present() {
	f.calls = append(f.calls, "present")
}

func (f *fakeRenderer) reset() {
	f.calls = nil
	f.configured = nil
	f.writes = nil
	f.draws = nil
}

func newTestState(t *testing.T, r *fakeRenderer, width, height int, options ...StateBuilderOption) *state {
	t.Helper()
	s, err := NewState(r, width, height, options...)
	require.NoError(t, err)
	return s.(*state)
}

func testModel() model.Model {
	mat := material.NewMaterial(material.WithName("cube"))
	mat.SetBindGroupProvider(bind_group_provider.NewBindGroupProvider("cube_material"))
	mdl := model.NewModel(model.WithName("cube"), model.WithMaterial(mat))
	mdl.SetMeshProvider(bind_group_provider.NewBindGroupProvider("cube_mesh"))
	return mdl
}

func TestNewState(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestState(t, r, 800, 600)

	assert.Equal(t, SurfaceReady, s.SurfaceState())
	assert.Equal(t, renderer.PipelineDefault, s.PipelineVariant())
	assert.InDelta(t, 800.0/600.0, s.Projection().Aspect(), 1e-6)
	assert.Equal(t, []string{"camera", "light"}, r.bindGroups)

	require.Len(t, r.writes, 2)
	assert.Equal(t, "light", r.writes[0].Provider.Label())
	assert.Len(t, r.writes[0].Data, 32)
	assert.Equal(t, "camera", r.writes[1].Provider.Label())
	assert.Len(t, r.writes[1].Data, 80)

	s = newTestState(t, &fakeRenderer{}, 0, 0)
	assert.Equal(t, SurfaceUnconfigured, s.SurfaceState())
	assert.Equal(t, float32(1), s.Projection().Aspect())
}

func TestNewState_InvalidProjection(t *testing.T) {
	_, err := NewState(&fakeRenderer{}, 800, 600, WithProjection(nil))
	require.NoError(t, err)

	proj, err := camera.NewProjection(1, 1, camera.WithClipPlanes(1, 0.5))
	assert.ErrorIs(t, err, camera.ErrInvalidClipPlanes)
	assert.Nil(t, proj)
}

func TestOnResize(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestState(t, r, 800, 600)

	require.NoError(t, s.OnResize(1024, 512))
	assert.Equal(t, []string{"configure", "depth"}, r.calls)
	assert.Equal(t, [][2]int{{1024, 512}}, r.configured)
	assert.InDelta(t, 2.0, s.Projection().Aspect(), 1e-6)
	assert.Equal(t, SurfaceReady, s.SurfaceState())
}

func TestOnResize_ZeroKeepsAspect(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestState(t, r, 800, 600)
	before := s.Projection().Aspect()

	require.NoError(t, s.OnResize(0, 600))
	assert.Equal(t, before, s.Projection().Aspect())
	assert.Equal(t, SurfaceUnconfigured, s.SurfaceState())
	assert.Empty(t, r.configured)
	assert.Equal(t, []string{"depth"}, r.calls)

	// nothing is drawn until a real size arrives
	require.NoError(t, s.OnRender())
	assert.NotContains(t, r.calls, "begin")

	require.NoError(t, s.OnResize(800, 600))
	assert.Equal(t, SurfaceReady, s.SurfaceState())
}

func TestOnResize_NeverConfigured(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestState(t, r, 0, 0)
	require.NoError(t, s.OnResize(0, 0))
	assert.Empty(t, r.calls)
}

func TestOnUpdate_WritesCameraUniform(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestState(t, r, 800, 600)
	r.reset()

	assert.True(t, s.Input(input.KeyEvent{Key: common.KeyW, Pressed: true}))
	s.OnUpdate(1)

	pos := s.Camera().Position()
	assert.InDelta(t, 0, pos.X(), 1e-4)
	assert.InDelta(t, 5, pos.Y(), 1e-4)
	assert.InDelta(t, 6, pos.Z(), 1e-4)

	require.Len(t, r.writes, 1)
	w := r.writes[0]
	assert.Equal(t, "camera", w.Provider.Label())
	assert.Equal(t, 0, w.Binding)
	assert.Len(t, w.Data, 80)
	// view position lives at offset 64
	assert.InDelta(t, 6, math.Float32frombits(binary.LittleEndian.Uint32(w.Data[72:])), 1e-4)

	u := s.Uniform()
	want := s.Projection().ProjectionMatrix().Mul4(s.Camera().ViewMatrix())
	assert.InDeltaSlice(t, want[:], u.ViewProj[:], 1e-5)
}

func TestOnRender_DrawsSelectedPipeline(t *testing.T) {
	r := &fakeRenderer{}
	redraws := 0
	mdl := testModel()
	s := newTestState(t, r, 800, 600, WithModel(mdl), WithRedrawHook(func() { redraws++ }))
	r.reset()

	require.NoError(t, s.OnRender())
	assert.Equal(t, []string{"begin", "draw", "end", "present"}, r.calls)
	assert.Equal(t, 1, redraws)

	require.Len(t, r.draws, 1)
	d := r.draws[0]
	assert.Equal(t, renderer.PipelineDefault, d.variant)
	assert.Same(t, mdl.MeshProvider(), d.mesh)
	require.Len(t, d.bindGroups, 3)
	assert.Equal(t, "cube_material", d.bindGroups[GroupMaterial].Label())
	assert.Equal(t, "camera", d.bindGroups[GroupCamera].Label())
	assert.Equal(t, "light", d.bindGroups[GroupLight].Label())

	s.Input(input.KeyEvent{Key: common.KeyTab, Pressed: true})
	require.NoError(t, s.OnRender())
	assert.Equal(t, renderer.PipelineExperimental, r.draws[1].variant)
}

func TestOnRender_Unconfigured(t *testing.T) {
	r := &fakeRenderer{}
	redraws := 0
	s := newTestState(t, r, 0, 0, WithRedrawHook(func() { redraws++ }))

	require.NoError(t, s.OnRender())
	assert.Empty(t, r.calls)
	assert.Equal(t, 1, redraws)
}

func TestOnRender_RecoverableSurfaceError(t *testing.T) {
	for _, sentinel := range []error{renderer.ErrSurfaceOutdated, renderer.ErrSurfaceLost} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			r := &fakeRenderer{beginErrs: []error{sentinel}}
			redraws := 0
			s := newTestState(t, r, 640, 480, WithModel(testModel()), WithRedrawHook(func() { redraws++ }))

			require.NoError(t, s.OnRender())
			assert.Equal(t, SurfaceReconfiguring, s.SurfaceState())
			assert.Equal(t, []string{"begin"}, r.calls)
			assert.Empty(t, r.configured, "reconfiguration waits for the next render")

			require.NoError(t, s.OnRender())
			assert.Equal(t, SurfaceReady, s.SurfaceState())
			assert.Equal(t, [][2]int{{640, 480}}, r.configured)
			assert.Equal(t, []string{"begin", "configure", "begin", "draw", "end", "present"}, r.calls)
			assert.Equal(t, 2, redraws)
		})
	}
}

func TestOnRender_TimeoutAndUnknownSkip(t *testing.T) {
	r := &fakeRenderer{beginErrs: []error{renderer.ErrSurfaceTimeout, errors.New("validation")}}
	s := newTestState(t, r, 640, 480, WithModel(testModel()))
	r.reset()

	require.NoError(t, s.OnRender())
	require.NoError(t, s.OnRender())
	assert.Equal(t, SurfaceReady, s.SurfaceState())
	assert.Equal(t, []string{"begin", "begin"}, r.calls)
}

func TestOnRender_Fatal(t *testing.T) {
	for _, sentinel := range []error{renderer.ErrDeviceLost, renderer.ErrOutOfMemory} {
		r := &fakeRenderer{beginErrs: []error{sentinel}}
		redraws := 0
		s := newTestState(t, r, 640, 480, WithRedrawHook(func() { redraws++ }))

		err := s.OnRender()
		assert.ErrorIs(t, err, sentinel)
		assert.True(t, renderer.IsFatal(err))
		assert.Equal(t, 1, redraws)
	}
}

func TestOnRender_DrawErrorDropsFrame(t *testing.T) {
	redraws := 0
	r := &fakeRenderer{drawErr: renderer.ErrPipelineNotRegistered}
	s := newTestState(t, r, 640, 480, WithModel(testModel()), WithRedrawHook(func() { redraws++ }))
	r.reset()

	require.NoError(t, s.OnRender())
	assert.Equal(t, []string{"begin", "draw", "end", "present"}, r.calls)
	assert.Equal(t, 1, redraws)

	// the next frame is attempted as usual
	r.reset()
	r.drawErr = nil
	require.NoError(t, s.OnRender())
	assert.Equal(t, []string{"begin", "draw", "end", "present"}, r.calls)
}

func TestOnRender_FatalDrawOrSubmitErrors(t *testing.T) {
	tests := []struct {
		name    string
		drawErr error
		endErr  error
		want    error
		calls   []string
	}{
		{"device lost while drawing", fmt.Errorf("draw: %w", renderer.ErrDeviceLost), nil, renderer.ErrDeviceLost, []string{"begin", "draw", "end", "present"}},
		{"out of memory on submit", nil, renderer.ErrOutOfMemory, renderer.ErrOutOfMemory, []string{"begin", "draw", "end"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRenderer{drawErr: tt.drawErr, endErr: tt.endErr}
			s := newTestState(t, r, 640, 480, WithModel(testModel()))
			r.reset()

			err := s.OnRender()
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.calls, r.calls)
		})
	}
}

func TestOnRender_SubmitErrorDropsFrame(t *testing.T) {
	r := &fakeRenderer{endErr: errors.New("queue submit failed")}
	s := newTestState(t, r, 640, 480, WithModel(testModel()))
	r.reset()

	require.NoError(t, s.OnRender())
	assert.Equal(t, []string{"begin", "draw", "end"}, r.calls)
}

func TestOnRender_WithoutModelClearsOnly(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestState(t, r, 640, 480)
	r.reset()

	require.NoError(t, s.OnRender())
	assert.Equal(t, []string{"begin", "end", "present"}, r.calls)
}

func TestInput_ToggleIsEdgeTriggered(t *testing.T) {
	s := newTestState(t, &fakeRenderer{}, 640, 480)

	// press, then held through three ticks of OS key repeat
	assert.True(t, s.Input(input.KeyEvent{Key: common.KeyTab, Pressed: true}))
	for range 3 {
		assert.True(t, s.Input(input.KeyEvent{Key: common.KeyTab, Pressed: true, Repeat: true}))
		s.OnUpdate(0.016)
	}
	assert.Equal(t, renderer.PipelineExperimental, s.PipelineVariant())

	assert.True(t, s.Input(input.KeyEvent{Key: common.KeyTab, Pressed: false}))
	assert.Equal(t, renderer.PipelineExperimental, s.PipelineVariant())

	s.Input(input.KeyEvent{Key: common.KeyTab, Pressed: true})
	assert.Equal(t, renderer.PipelineDefault, s.PipelineVariant())
}

func TestInput_Escape(t *testing.T) {
	s := newTestState(t, &fakeRenderer{}, 640, 480)
	assert.False(t, s.ExitRequested())
	assert.True(t, s.Input(input.KeyEvent{Key: common.KeyEsc, Pressed: false}))
	assert.False(t, s.ExitRequested())
	assert.True(t, s.Input(input.KeyEvent{Key: common.KeyEsc, Pressed: true}))
	assert.True(t, s.ExitRequested())
}

func TestInput_MouseLookGate(t *testing.T) {
	s := newTestState(t, &fakeRenderer{}, 640, 480)
	yaw := s.Camera().Yaw()

	assert.False(t, s.Input(input.MouseMotionEvent{DX: 10}))
	s.OnUpdate(1)
	assert.Equal(t, yaw, s.Camera().Yaw())

	assert.False(t, s.Input(input.MouseButtonEvent{Button: common.MouseButtonRight, Pressed: true}))
	assert.True(t, s.Input(input.MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: true}))
	assert.True(t, s.Input(input.MouseMotionEvent{DX: 10}))
	s.OnUpdate(0.1)
	assert.InDelta(t, yaw+1, s.Camera().Yaw(), 1e-5)

	assert.True(t, s.Input(input.MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: false}))
	assert.False(t, s.Input(input.MouseMotionEvent{DX: 10}))
}

func TestInput_ScrollAndUnknown(t *testing.T) {
	s := newTestState(t, &fakeRenderer{}, 640, 480)
	assert.True(t, s.Input(input.MouseWheelEvent{Delta: input.ScrollDelta{Unit: input.ScrollLines, Y: 1}}))
	assert.False(t, s.Input(input.KeyEvent{Key: 9999, Pressed: true}))
	assert.False(t, s.Input(nil))
}

func TestSurfaceStateString(t *testing.T) {
	assert.Equal(t, "unconfigured", SurfaceUnconfigured.String())
	assert.Equal(t, "ready", SurfaceReady.String())
	assert.Equal(t, "reconfiguring", SurfaceReconfiguring.String())
	assert.Equal(t, "unknown", SurfaceState(7).String())
}

func TestBindGroupLayouts(t *testing.T) {
	layouts := BindGroupLayouts()
	require.Len(t, layouts, 3)
	assert.Len(t, layouts[GroupMaterial].Entries, 4)
	assert.Equal(t, uint64(80), layouts[GroupCamera].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(32), layouts[GroupLight].Entries[0].Buffer.MinBindingSize)
}
