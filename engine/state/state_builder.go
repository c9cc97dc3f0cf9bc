package state

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/light"
	"github.com/Carmen-Shannon/oxy-flycam/engine/model"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
)

// StateBuilderOption is a functional option applied to a State during construction via NewState.
type StateBuilderOption func(*state)

// WithCamera sets the camera the State flies. Defaults to camera.NewCamera().
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - StateBuilderOption: a function that applies the camera option to a State
func WithCamera(cam camera.Camera) StateBuilderOption {
	return func(s *state) {
		s.camera = cam
	}
}

// WithProjection sets the projection. Defaults to a 45° projection sized to the initial surface.
//
// Parameters:
//   - proj: the projection
//
// Returns:
//   - StateBuilderOption: a function that applies the projection option to a State
func WithProjection(proj camera.Projection) StateBuilderOption {
	return func(s *state) {
		s.projection = proj
	}
}

// WithController sets the camera controller. Defaults to camera.NewCameraController().
//
// Parameters:
//   - controller: the controller
//
// Returns:
//   - StateBuilderOption: a function that applies the controller option to a State
func WithController(controller camera.CameraController) StateBuilderOption {
	return func(s *state) {
		s.controller = controller
	}
}

// WithLight sets the static light. Defaults to light.NewLight().
//
// Parameters:
//   - l: the light
//
// Returns:
//   - StateBuilderOption: a function that applies the light option to a State
func WithLight(l light.Light) StateBuilderOption {
	return func(s *state) {
		s.light = l
	}
}

// WithModel sets the instanced model drawn each frame. Its mesh provider and material
// bind group must already be on the GPU.
//
// Parameters:
//   - mdl: the model
//
// Returns:
//   - StateBuilderOption: a function that applies the model option to a State
func WithModel(mdl model.Model) StateBuilderOption {
	return func(s *state) {
		s.model = mdl
	}
}

// WithPipelineVariant sets the pipeline drawn with until the first toggle.
//
// Parameters:
//   - variant: the initial pipeline variant
//
// Returns:
//   - StateBuilderOption: a function that applies the variant option to a State
func WithPipelineVariant(variant renderer.PipelineVariant) StateBuilderOption {
	return func(s *state) {
		s.variant = variant
	}
}

// WithRedrawHook sets the function OnRender calls on exit to schedule the next frame.
//
// Parameters:
//   - hook: called once per OnRender
//
// Returns:
//   - StateBuilderOption: a function that applies the redraw hook option to a State
func WithRedrawHook(hook func()) StateBuilderOption {
	return func(s *state) {
		s.redraw = hook
	}
}

// WithLogger sets the logger for surface and pipeline state changes.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - StateBuilderOption: a function that applies the logger option to a State
func WithLogger(logger common.Logger) StateBuilderOption {
	return func(s *state) {
		if logger != nil {
			s.logger = logger
		}
	}
}
