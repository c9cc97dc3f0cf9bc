package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
	cursor  cursorTracker
}

// cursorTracker turns absolute cursor positions into deltas. The first position after
// a reset only primes it.
type cursorTracker struct {
	x, y   float64
	primed bool
}

func (c *cursorTracker) delta(x, y float64) (dx, dy float64, ok bool) {
	if c.primed {
		dx, dy, ok = x-c.x, y-c.y, true
	}
	c.x, c.y, c.primed = x, y, true
	return dx, dy, ok
}

func (c *cursorTracker) reset() {
	c.primed = false
}

// keyEvent translates a GLFW key action. Unknown keys are dropped.
func keyEvent(key glfw.Key, action glfw.Action) (input.KeyEvent, bool) {
	if key == glfw.KeyUnknown {
		return input.KeyEvent{}, false
	}
	ev := input.KeyEvent{Key: uint32(key)}
	switch action {
	case glfw.Press:
		ev.Pressed = true
	case glfw.Repeat:
		ev.Pressed = true
		ev.Repeat = true
	case glfw.Release:
	default:
		return input.KeyEvent{}, false
	}
	return ev, true
}

// sizeLimit maps an unset limit to GLFW's DontCare.
func sizeLimit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(sizeLimit(w.minWidth), sizeLimit(w.minHeight), sizeLimit(w.maxWidth), sizeLimit(w.maxHeight))

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if ev, ok := keyEvent(key, action); ok {
			w.dispatch(ev)
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		// GLFW reports wheel notches and touchpad travel alike in lines.
		w.dispatch(input.MouseWheelEvent{Delta: input.ScrollDelta{
			Unit: input.ScrollLines,
			X:    float32(xoff),
			Y:    float32(yoff),
		}})
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Release {
			return
		}
		pressed := action == glfw.Press
		if button == glfw.MouseButtonLeft {
			gw.setLook(pressed)
		}
		w.dispatch(input.MouseButtonEvent{Button: int(button), Pressed: pressed})
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if dx, dy, ok := gw.cursor.delta(xpos, ypos); ok && (dx != 0 || dy != 0) {
			w.dispatch(input.MouseMotionEvent{DX: dx, DY: dy})
		}
	})

	// Framebuffer size rather than window size: on high-DPI displays they differ and the
	// surface must be configured in pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// setLook captures the cursor while mouse look is held so deltas are unbounded, using
// unaccelerated motion where the platform has it.
func (gw *glfwWindow) setLook(enabled bool) {
	gw.cursor.reset()
	if enabled {
		gw.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			gw.window.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
		return
	}
	if glfw.RawMouseMotionSupported() {
		gw.window.SetInputMode(glfw.RawMouseMotion, glfw.False)
	}
	gw.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

func platformRequestClose(w *engineWindow) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
}

func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return errors.New("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
