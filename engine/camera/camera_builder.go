package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - position: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithYaw sets the camera's initial horizontal angle.
//
// Parameters:
//   - yaw: angle in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
	}
}

// WithPitch sets the camera's initial vertical angle. The value is clamped once all options are applied.
//
// Parameters:
//   - pitch: angle in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
	}
}

// ProjectionBuilderOption is a functional option for configuring a Projection.
type ProjectionBuilderOption func(*projectionImpl)

// WithFovy sets the vertical field of view.
//
// Parameters:
//   - fovy: field of view in radians, within (0, π)
//
// Returns:
//   - ProjectionBuilderOption: functional option to set the field of view
func WithFovy(fovy float32) ProjectionBuilderOption {
	return func(p *projectionImpl) {
		p.fovy = fovy
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - znear: near plane distance, must be > 0
//   - zfar: far plane distance, must be > znear
//
// Returns:
//   - ProjectionBuilderOption: functional option to set the clip planes
func WithClipPlanes(znear, zfar float32) ProjectionBuilderOption {
	return func(p *projectionImpl) {
		p.znear = znear
		p.zfar = zfar
	}
}
