package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window whose message loop the engine runs.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithHandler sets the per-frame logic the engine drives.
//
// Parameters:
//   - h: the handler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHandler(h Handler) EngineBuilderOption {
	return func(e *engine) {
		e.handler = h
	}
}

// WithLogger sets the logger used for lifecycle messages and profiler output.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger common.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}

// WithMaxDeltaTime caps the dt passed to OnUpdate. Zero disables the cap.
//
// Parameters:
//   - d: the largest step a single update may take
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDeltaTime(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.maxDeltaTime = d
	}
}
