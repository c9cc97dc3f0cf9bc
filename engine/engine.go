package engine

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
)

// Handler is the per-frame logic the engine drives. state.State implements it.
type Handler interface {
	OnResize(width, height int) error
	OnUpdate(dt float32)
	OnRender() error
	Input(ev input.Event) bool
	ExitRequested() bool
}

// engine implements the Engine interface.
type engine struct {
	window  window.Window
	handler Handler
	logger  common.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxDeltaTime     time.Duration

	now        func() time.Time
	sleep      func(time.Duration)
	lastUpdate time.Time
	frames     uint64

	err error
}

// Engine runs the window message loop and, on the same thread, sequences input,
// update and render into the Handler.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns how many redraws have run.
	//
	// Returns:
	//   - uint64: redraw count
	Frames() uint64

	// Run starts the main loop and blocks until the window closes, the handler requests
	// exit, or a fatal error occurs.
	//
	// Returns:
	//   - error: the fatal resize or render error that stopped the loop, if any
	Run() error

	// Quit asks the loop to stop after the current iteration.
	// Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine. A window and a handler are required.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if no window or handler was supplied
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		logger:       common.NewNopLogger(),
		maxDeltaTime: 250 * time.Millisecond,
		now:          time.Now,
		sleep:        time.Sleep,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, errors.New("engine: no window")
	}
	if e.handler == nil {
		return nil, errors.New("engine: no handler")
	}
	e.profiler = profiler.NewProfiler(e.logger, time.Second)

	e.window.SetResizeCallback(e.onResize)
	e.window.SetInputCallback(e.onInput)
	e.window.SetUpdateCallback(e.onUpdate)
	e.window.SetRedrawCallback(e.onRedraw)

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() error {
	e.lastUpdate = e.now()
	e.window.ProcessMessages()
	return e.err
}

func (e *engine) Quit() {
	e.window.RequestClose()
}

func (e *engine) fail(err error) {
	if e.err == nil {
		e.err = err
		e.logger.Errorf("%v", err)
	}
	e.Quit()
}

func (e *engine) onResize(width, height int) {
	if err := e.handler.OnResize(width, height); err != nil {
		e.fail(err)
	}
}

func (e *engine) onInput(ev input.Event) bool {
	consumed := e.handler.Input(ev)
	if e.handler.ExitRequested() {
		e.logger.Infof("exit requested")
		e.Quit()
	}
	return consumed
}

// onUpdate runs once per loop iteration after events are dispatched.
func (e *engine) onUpdate() {
	now := e.now()
	dt := now.Sub(e.lastUpdate)
	e.lastUpdate = now
	// A long stall (window drag, breakpoint) must not fling the camera.
	if e.maxDeltaTime > 0 && dt > e.maxDeltaTime {
		dt = e.maxDeltaTime
	}
	e.handler.OnUpdate(float32(dt.Seconds()))
}

func (e *engine) onRedraw() {
	start := e.now()
	e.frames++
	if err := e.handler.OnRender(); err != nil {
		e.fail(err)
		return
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
