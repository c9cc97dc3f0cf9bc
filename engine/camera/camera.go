package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	yaw      float32
	pitch    float32
}

// Camera defines the interface for a free-flying first-person camera.
// The camera holds a world-space position and a yaw/pitch orientation (no roll).
// Pitch is always kept within [-common.HalfPi, common.HalfPi].
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Yaw returns the horizontal orientation angle in radians.
	//
	// Returns:
	//   - float32: yaw in radians (0 looks down +X)
	Yaw() float32

	// Pitch returns the vertical orientation angle in radians.
	//
	// Returns:
	//   - float32: pitch in radians, within [-common.HalfPi, common.HalfPi]
	Pitch() float32

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - position: world-space coordinates
	SetPosition(position mgl32.Vec3)

	// SetYaw sets the horizontal orientation angle.
	//
	// Parameters:
	//   - yaw: angle in radians
	SetYaw(yaw float32)

	// SetPitch sets the vertical orientation angle, clamped to [-common.HalfPi, common.HalfPi].
	//
	// Parameters:
	//   - pitch: angle in radians
	SetPitch(pitch float32)

	// ViewMatrix returns the current world-to-view transform.
	// It has no side effects and may be called any number of times per frame.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera positioned at (0, 5, 10) looking down -Z and slightly downward
// (yaw -90°, pitch -20°).
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 5, 10},
		yaw:      mgl32.DegToRad(-90),
		pitch:    mgl32.DegToRad(-20),
	}
	for _, option := range options {
		option(c)
	}
	c.pitch = common.ClampPitch(c.pitch)
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
}

func (c *cameraImpl) SetYaw(yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = yaw
}

func (c *cameraImpl) SetPitch(pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = common.ClampPitch(pitch)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ViewMatrix(c.position, c.yaw, c.pitch)
}
