package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name   string
		key    glfw.Key
		action glfw.Action
		want   input.KeyEvent
		ok     bool
	}{
		{"press", glfw.KeyTab, glfw.Press, input.KeyEvent{Key: 258, Pressed: true}, true},
		{"repeat", glfw.KeyW, glfw.Repeat, input.KeyEvent{Key: 87, Pressed: true, Repeat: true}, true},
		{"release", glfw.KeyEscape, glfw.Release, input.KeyEvent{Key: 256}, true},
		{"unknown key", glfw.KeyUnknown, glfw.Press, input.KeyEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyEvent(tt.key, tt.action)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCursorTracker(t *testing.T) {
	var c cursorTracker
	_, _, ok := c.delta(10, 10)
	assert.False(t, ok)

	dx, dy, ok := c.delta(13, 6)
	assert.True(t, ok)
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, -4.0, dy)

	c.reset()
	_, _, ok = c.delta(100, 100)
	assert.False(t, ok)
}

func TestSizeLimit(t *testing.T) {
	assert.Equal(t, glfw.DontCare, sizeLimit(0))
	assert.Equal(t, 640, sizeLimit(640))
}

func TestTick_RedrawOnlyWhenRequested(t *testing.T) {
	w := newEngineWindow()
	updates, redraws := 0, 0
	w.SetUpdateCallback(func() { updates++ })
	w.SetRedrawCallback(func() { redraws++ })

	w.tick()
	w.tick()
	assert.Equal(t, 2, updates)
	assert.Equal(t, 1, redraws, "only the initial request")

	w.RequestRedraw()
	w.tick()
	assert.Equal(t, 2, redraws)
}

func TestDispatchAndResize(t *testing.T) {
	w := newEngineWindow(WithSize(800, 600), WithTitle("t"), WithMinSize(1, 1), WithMaxSize(0, 0))
	assert.Equal(t, "t", w.title)
	assert.Equal(t, 800, w.Width())
	assert.False(t, w.dispatch(input.KeyEvent{}))

	var got []input.Event
	w.SetInputCallback(func(ev input.Event) bool {
		got = append(got, ev)
		return true
	})
	assert.True(t, w.dispatch(input.MouseMotionEvent{DX: 1}))
	assert.Len(t, got, 1)

	var size [2]int
	w.SetResizeCallback(func(width, height int) { size = [2]int{width, height} })
	w.resized(0, 0)
	assert.Equal(t, [2]int{0, 0}, size)
	assert.Equal(t, 0, w.Height())

	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}
