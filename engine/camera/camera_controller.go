package camera

import (
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
)

// CameraController turns discrete input into continuous camera motion.
//
// Directional key state persists until the key is released. Mouse deltas and scroll
// are one-shot impulses: the latest value since the previous UpdateCamera is applied
// once and then cleared.
type CameraController interface {
	// ConsumeKey records a press or release of a movement key.
	// W/Up move forward, S/Down backward, A/Left left, D/Right right, Space up and Left Shift down.
	//
	// Parameters:
	//   - code: the virtual key code (see common.Key* constants)
	//   - pressed: true on press, false on release
	//
	// Returns:
	//   - bool: true if the key is a movement key, false if it was ignored
	ConsumeKey(code uint32, pressed bool) bool

	// ConsumeMouseDelta records a raw mouse delta for the next update.
	// Calls within one frame overwrite each other; the deltas are not summed.
	//
	// Parameters:
	//   - dx: horizontal delta in device units
	//   - dy: vertical delta in device units
	ConsumeMouseDelta(dx, dy float64)

	// ConsumeScroll records a wheel delta for the next update, overwriting any earlier one.
	// Line deltas are converted to pixels (input.PixelsPerLine per line) and the sign is inverted.
	//
	// Parameters:
	//   - delta: the wheel delta in lines or pixels
	ConsumeScroll(delta input.ScrollDelta)

	// UpdateCamera integrates the accumulated input into the camera over dt seconds.
	// Movement is planar and driven by yaw only. Scroll dollies along the full view direction.
	// Rotation impulses and scroll are reset afterwards and pitch is clamped to
	// [-common.HalfPi, common.HalfPi].
	//
	// Parameters:
	//   - cam: the camera to move
	//   - dt: elapsed time in seconds
	UpdateCamera(cam Camera, dt float32)

	// Speed returns the translation speed in world units per second.
	//
	// Returns:
	//   - float32: movement speed
	Speed() float32

	// Sensitivity returns the rotation and scroll multiplier.
	//
	// Returns:
	//   - float32: input sensitivity
	Sensitivity() float32

	// SetTuning replaces speed and sensitivity, e.g. after a config reload.
	// Non-positive values leave the current setting unchanged.
	//
	// Parameters:
	//   - speed: world units per second
	//   - sensitivity: multiplier for mouse and wheel input
	SetTuning(speed, sensitivity float32)
}
