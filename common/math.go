package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// HalfPi is the pitch clamp bound for yaw/pitch cameras. It sits just inside π/2 so the
// forward vector never becomes parallel to world up, where the look-to cross product degenerates.
const HalfPi = float32(math.Pi/2 - 0.0001)

// WorldUp is the world-space up axis used by every view matrix in the engine.
var WorldUp = mgl32.Vec3{0, 1, 0}

// OpenGLToWGPU remaps clip-space depth from the OpenGL convention [-1, 1] to the
// WebGPU convention [0, 1]. It is applied on the left of a standard perspective matrix.
// Stored column-major.
var OpenGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Forward returns the normalized look direction for a yaw/pitch orientation.
//
// Parameters:
//   - yaw: horizontal angle in radians (0 looks down +X)
//   - pitch: vertical angle in radians (positive looks up)
//
// Returns:
//   - mgl32.Vec3: unit-length forward vector (cos p·cos y, sin p, cos p·sin y)
func Forward(yaw, pitch float32) mgl32.Vec3 {
	sinPitch, cosPitch := sincos(pitch)
	sinYaw, cosYaw := sincos(yaw)
	return mgl32.Vec3{cosPitch * cosYaw, sinPitch, cosPitch * sinYaw}.Normalize()
}

// LookToRH builds a right-handed view matrix looking from eye along dir.
// Unlike a look-at construction it takes a direction, not a target point.
//
// Parameters:
//   - eye: camera position in world space
//   - dir: look direction (need not be normalized)
//   - up: world up vector, must not be parallel to dir
//
// Returns:
//   - mgl32.Mat4: the world-to-view transform (column-major)
func LookToRH(eye, dir, up mgl32.Vec3) mgl32.Mat4 {
	f := dir.Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return mgl32.Mat4{
		s[0], u[0], -f[0], 0,
		s[1], u[1], -f[1], 0,
		s[2], u[2], -f[2], 0,
		-eye.Dot(s), -eye.Dot(u), eye.Dot(f), 1,
	}
}

// ViewMatrix builds the view matrix for a camera at position with the given yaw and pitch.
//
// Parameters:
//   - position: camera position in world space
//   - yaw: horizontal angle in radians
//   - pitch: vertical angle in radians
//
// Returns:
//   - mgl32.Mat4: the world-to-view transform
func ViewMatrix(position mgl32.Vec3, yaw, pitch float32) mgl32.Mat4 {
	return LookToRH(position, Forward(yaw, pitch), WorldUp)
}

// ProjectionMatrix builds a perspective projection whose depth output lands in [0, 1].
// The caller guarantees aspect was not derived from a zero-height viewport.
//
// Parameters:
//   - fovy: vertical field of view in radians
//   - aspect: viewport width / height
//   - znear: near plane distance (> 0)
//   - zfar: far plane distance (> znear)
//
// Returns:
//   - mgl32.Mat4: OpenGLToWGPU × perspective
func ProjectionMatrix(fovy, aspect, znear, zfar float32) mgl32.Mat4 {
	return OpenGLToWGPU.Mul4(mgl32.Perspective(fovy, aspect, znear, zfar))
}

// ClampPitch clamps a pitch angle to [-HalfPi, HalfPi].
func ClampPitch(pitch float32) float32 {
	return mgl32.Clamp(pitch, -HalfPi, HalfPi)
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}
