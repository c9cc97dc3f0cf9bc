package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Held key state, 0 or 1. Not reset by UpdateCamera.
	amountLeft     float32
	amountRight    float32
	amountForward  float32
	amountBackward float32
	amountUp       float32
	amountDown     float32

	// One-shot impulses, cleared by UpdateCamera.
	rotateHorizontal float32
	rotateVertical   float32
	scroll           float32

	speed       float32
	sensitivity float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with a speed of 4 and a sensitivity of 1.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		speed:       4.0,
		sensitivity: 1.0,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Speed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.speed
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.sensitivity
}

func (cc *cameraControllerImpl) SetTuning(speed, sensitivity float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if speed > 0 {
		cc.speed = speed
	}
	if sensitivity > 0 {
		cc.sensitivity = sensitivity
	}
}

func (cc *cameraControllerImpl) ConsumeKey(code uint32, pressed bool) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var amount float32
	if pressed {
		amount = 1
	}

	switch code {
	case common.KeyW, common.KeyUp:
		cc.amountForward = amount
	case common.KeyA, common.KeyLeft:
		cc.amountLeft = amount
	case common.KeyS, common.KeyDown:
		cc.amountBackward = amount
	case common.KeyD, common.KeyRight:
		cc.amountRight = amount
	case common.KeySpace:
		cc.amountUp = amount
	case common.KeyLeftShift:
		cc.amountDown = amount
	default:
		return false
	}
	return true
}

func (cc *cameraControllerImpl) ConsumeMouseDelta(dx, dy float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotateHorizontal = float32(dx)
	cc.rotateVertical = float32(dy)
}

func (cc *cameraControllerImpl) ConsumeScroll(delta input.ScrollDelta) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.scroll = -delta.Pixels()
}

func (cc *cameraControllerImpl) UpdateCamera(cam Camera, dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	position := cam.Position()
	yaw := cam.Yaw()
	pitch := cam.Pitch()

	sinYaw, cosYaw := math.Sincos(float64(yaw))
	forward := mgl32.Vec3{float32(cosYaw), 0, float32(sinYaw)}.Normalize()
	right := mgl32.Vec3{float32(-sinYaw), 0, float32(cosYaw)}.Normalize()
	position = position.Add(forward.Mul((cc.amountForward - cc.amountBackward) * cc.speed * dt))
	position = position.Add(right.Mul((cc.amountRight - cc.amountLeft) * cc.speed * dt))

	// Dolly along the full view direction so scrolling moves toward what the camera faces.
	scrollward := common.Forward(yaw, pitch)
	position = position.Add(scrollward.Mul(cc.scroll * cc.speed * cc.sensitivity * dt))
	cc.scroll = 0

	position[1] += (cc.amountUp - cc.amountDown) * cc.speed * dt

	yaw += cc.rotateHorizontal * cc.sensitivity * dt
	pitch += -cc.rotateVertical * cc.sensitivity * dt
	cc.rotateHorizontal = 0
	cc.rotateVertical = 0

	cam.SetPosition(position)
	cam.SetYaw(yaw)
	cam.SetPitch(common.ClampPitch(pitch))
}
