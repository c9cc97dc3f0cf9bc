// Package state holds the per-frame render state: the camera and its controller, the
// uniform resources the shaders read, the selected pipeline and the surface lifecycle.
package state

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/light"
	"github.com/Carmen-Shannon/oxy-flycam/engine/model"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is the part of renderer.Renderer the State drives.
type Renderer interface {
	ConfigureSurface(width, height int) error
	RecreateDepthTexture() error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	BeginFrame() error
	DrawCall(variant renderer.PipelineVariant, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame() error
	Present()
}

// state is the implementation of the State interface.
type state struct {
	r      Renderer
	logger common.Logger

	camera     camera.Camera
	projection camera.Projection
	controller camera.CameraController
	uniform    camera.GPUCameraUniform
	light      light.Light
	model      model.Model

	cameraProvider bind_group_provider.BindGroupProvider
	lightProvider  bind_group_provider.BindGroupProvider
	bindGroups     []bind_group_provider.BindGroupProvider

	variant renderer.PipelineVariant
	surface SurfaceState
	width   int
	height  int

	toggleHeld    bool
	mouseLook     bool
	exitRequested bool

	redraw func()
}

// State owns everything a frame needs and sequences resize, update and render.
// All methods are called from the render thread; State is not safe for concurrent use.
type State interface {
	// OnResize reacts to a new framebuffer size. A positive size reconfigures the surface
	// and makes it ready; a zero dimension marks it unconfigured. The projection and the
	// depth texture always follow.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - error: error only if the device fails to reconfigure
	OnResize(width, height int) error

	// OnUpdate integrates the controller into the camera and queues the new camera
	// uniform for upload.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous update
	OnUpdate(dt float32)

	// OnRender draws one frame with the selected pipeline and presents it. Unconfigured
	// surfaces, recoverable acquire failures and non-fatal draw or submit failures skip
	// the frame without error. The redraw hook runs on every call.
	//
	// Returns:
	//   - error: a device-lost or out-of-memory error
	OnRender() error

	// Input routes one window event. Tab toggles the pipeline on press, Escape requests
	// exit, the left mouse button gates mouse look, everything else goes to the controller.
	//
	// Parameters:
	//   - ev: the event
	//
	// Returns:
	//   - bool: true if the event was consumed
	Input(ev input.Event) bool

	// Camera returns the camera being flown.
	Camera() camera.Camera

	// Projection returns the projection.
	Projection() camera.Projection

	// Uniform returns the last computed camera uniform.
	Uniform() camera.GPUCameraUniform

	// PipelineVariant returns the pipeline the next frame draws with.
	PipelineVariant() renderer.PipelineVariant

	// SurfaceState returns the surface lifecycle state.
	SurfaceState() SurfaceState

	// ExitRequested reports whether Escape has been pressed.
	ExitRequested() bool

	// Release frees the camera and light GPU resources.
	Release()
}

var _ State = &state{}

// NewState creates the camera and light uniform resources on r and uploads the light.
// A positive initial size means the surface was configured by the caller and the State
// starts ready.
//
// Parameters:
//   - r: the renderer to drive
//   - width: initial framebuffer width
//   - height: initial framebuffer height
//   - options: a variadic list of StateBuilderOption functions
//
// Returns:
//   - State: the new state
//   - error: error if the projection is invalid or a bind group cannot be created
func NewState(r Renderer, width, height int, options ...StateBuilderOption) (State, error) {
	s := &state{
		r:       r,
		logger:  common.NewNopLogger(),
		uniform: camera.NewGPUCameraUniform(),
		variant: renderer.PipelineDefault,
	}
	for _, option := range options {
		option(s)
	}

	if s.camera == nil {
		s.camera = camera.NewCamera()
	}
	if s.controller == nil {
		s.controller = camera.NewCameraController()
	}
	if s.light == nil {
		s.light = light.NewLight()
	}
	if s.projection == nil {
		proj, err := camera.NewProjection(width, height)
		if err != nil {
			return nil, err
		}
		s.projection = proj
	} else {
		s.projection.Resize(width, height)
	}
	if width > 0 && height > 0 {
		s.width, s.height = width, height
		s.surface = SurfaceReady
	}

	layouts := BindGroupLayouts()
	s.cameraProvider = bind_group_provider.NewBindGroupProvider("camera")
	if err := r.InitBindGroup(s.cameraProvider, layouts[GroupCamera]); err != nil {
		return nil, fmt.Errorf("failed to init camera bind group: %w", err)
	}
	s.lightProvider = bind_group_provider.NewBindGroupProvider("light")
	if err := r.InitBindGroup(s.lightProvider, layouts[GroupLight]); err != nil {
		s.cameraProvider.Release()
		return nil, fmt.Errorf("failed to init light bind group: %w", err)
	}

	lightUniform := s.light.Uniform()
	s.uniform.Update(s.camera, s.projection)
	r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.lightProvider, Binding: 0, Data: lightUniform.Marshal()},
		{Provider: s.cameraProvider, Binding: 0, Data: s.uniform.Marshal()},
	})

	if s.model != nil && s.model.Material() != nil {
		s.bindGroups = make([]bind_group_provider.BindGroupProvider, len(layouts))
		s.bindGroups[GroupMaterial] = s.model.Material().BindGroupProvider()
		s.bindGroups[GroupCamera] = s.cameraProvider
		s.bindGroups[GroupLight] = s.lightProvider
	}

	return s, nil
}

func (s *state) OnResize(width, height int) error {
	s.projection.Resize(width, height)

	if width > 0 && height > 0 {
		if err := s.r.ConfigureSurface(width, height); err != nil {
			return fmt.Errorf("failed to configure surface %dx%d: %w", width, height, err)
		}
		s.width, s.height = width, height
		s.setSurface(SurfaceReady)
	} else {
		s.setSurface(SurfaceUnconfigured)
	}

	// Recreated at the last configured size, so a minimize keeps a valid depth target.
	if s.width > 0 && s.height > 0 {
		if err := s.r.RecreateDepthTexture(); err != nil {
			return fmt.Errorf("failed to recreate depth texture: %w", err)
		}
	}
	return nil
}

func (s *state) OnUpdate(dt float32) {
	s.controller.UpdateCamera(s.camera, dt)
	s.uniform.Update(s.camera, s.projection)
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.cameraProvider, Binding: 0, Data: s.uniform.Marshal()},
	})
}

func (s *state) OnRender() error {
	defer s.requestRedraw()

	switch s.surface {
	case SurfaceUnconfigured:
		return nil
	case SurfaceReconfiguring:
		if err := s.r.ConfigureSurface(s.width, s.height); err != nil {
			return fmt.Errorf("failed to reconfigure surface: %w", err)
		}
		s.setSurface(SurfaceReady)
	}

	if err := s.r.BeginFrame(); err != nil {
		switch {
		case renderer.IsFatal(err):
			return fmt.Errorf("failed to acquire frame: %w", err)
		case renderer.IsSurfaceRecoverable(err):
			s.setSurface(SurfaceReconfiguring)
		case errors.Is(err, renderer.ErrSurfaceTimeout):
			s.logger.Warnf("surface acquire timed out, skipping frame")
		default:
			s.logger.Warnf("skipping frame: %v", err)
		}
		return nil
	}

	drawErr := s.draw()
	endErr := s.r.EndFrame()
	if endErr == nil {
		s.r.Present()
	}
	if err := errors.Join(drawErr, endErr); err != nil {
		if renderer.IsFatal(err) {
			return err
		}
		s.logger.Warnf("dropping frame: %v", err)
	}
	return nil
}

func (s *state) draw() error {
	if s.model == nil || s.bindGroups == nil {
		return nil
	}
	mesh := s.model.MeshProvider()
	if mesh == nil {
		return nil
	}
	if err := s.r.DrawCall(s.variant, mesh, s.bindGroups); err != nil {
		return fmt.Errorf("draw %q: %w", s.model.Name(), err)
	}
	return nil
}

func (s *state) requestRedraw() {
	if s.redraw != nil {
		s.redraw()
	}
}

func (s *state) setSurface(next SurfaceState) {
	if s.surface != next {
		s.logger.Debugf("surface %s -> %s", s.surface, next)
		s.surface = next
	}
}

func (s *state) Input(ev input.Event) bool {
	switch e := ev.(type) {
	case input.KeyEvent:
		switch e.Key {
		case common.KeyTab:
			if e.Pressed && !s.toggleHeld {
				s.variant = s.variant.Toggle()
				s.logger.Infof("pipeline: %s", s.variant)
			}
			s.toggleHeld = e.Pressed
			return true
		case common.KeyEsc:
			if e.Pressed {
				s.exitRequested = true
			}
			return true
		}
		return s.controller.ConsumeKey(e.Key, e.Pressed)
	case input.MouseMotionEvent:
		if !s.mouseLook {
			return false
		}
		s.controller.ConsumeMouseDelta(e.DX, e.DY)
		return true
	case input.MouseWheelEvent:
		s.controller.ConsumeScroll(e.Delta)
		return true
	case input.MouseButtonEvent:
		if e.Button != common.MouseButtonLeft {
			return false
		}
		s.mouseLook = e.Pressed
		return true
	}
	return false
}

func (s *state) Camera() camera.Camera {
	return s.camera
}

func (s *state) Projection() camera.Projection {
	return s.projection
}

func (s *state) Uniform() camera.GPUCameraUniform {
	return s.uniform
}

func (s *state) PipelineVariant() renderer.PipelineVariant {
	return s.variant
}

func (s *state) SurfaceState() SurfaceState {
	return s.surface
}

func (s *state) ExitRequested() bool {
	return s.exitRequested
}

func (s *state) Release() {
	if s.cameraProvider != nil {
		s.cameraProvider.Release()
	}
	if s.lightProvider != nil {
		s.lightProvider.Release()
	}
}
