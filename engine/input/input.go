// Package input defines the platform-neutral events the window layer delivers to the frame state.
package input

// PixelsPerLine is how many pixel-equivalents one line of wheel scroll represents.
const PixelsPerLine = 100

// Event is any input delivered by the window. The concrete types are KeyEvent,
// MouseMotionEvent, MouseWheelEvent and MouseButtonEvent.
type Event interface {
	isEvent()
}

// KeyEvent reports a keyboard key transition.
type KeyEvent struct {
	// Key is the virtual key code (see common.Key* constants).
	Key uint32
	// Pressed is true for press and repeat, false for release.
	Pressed bool
	// Repeat marks an OS auto-repeat while the key is held.
	Repeat bool
}

// MouseMotionEvent carries a raw cursor delta in device units.
type MouseMotionEvent struct {
	DX, DY float64
}

// ScrollUnit tags the unit a wheel delta was reported in.
type ScrollUnit int

const (
	// ScrollLines is a notched wheel delta counted in lines.
	ScrollLines ScrollUnit = iota
	// ScrollPixels is a smooth (touchpad) delta counted in pixels.
	ScrollPixels
)

// ScrollDelta is a wheel delta in either lines or pixels.
type ScrollDelta struct {
	Unit ScrollUnit
	X, Y float32
}

// Pixels returns the vertical delta in pixel-equivalents.
func (d ScrollDelta) Pixels() float32 {
	if d.Unit == ScrollLines {
		return d.Y * PixelsPerLine
	}
	return d.Y
}

// MouseWheelEvent reports a wheel or touchpad scroll.
type MouseWheelEvent struct {
	Delta ScrollDelta
}

// MouseButtonEvent reports a mouse button transition.
type MouseButtonEvent struct {
	// Button is the button index (see common.MouseButton* constants).
	Button  int
	Pressed bool
}

func (KeyEvent) isEvent()         {}
func (MouseMotionEvent) isEvent() {}
func (MouseWheelEvent) isEvent()  {}
func (MouseButtonEvent) isEvent() {}
