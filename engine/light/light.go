package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	position mgl32.Vec3
	color    mgl32.Vec3
}

// Light is the single static point light the shaders shade against.
// It is created once at startup and uploaded once; nothing mutates it afterwards.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Color returns the RGB colour of the light.
	//
	// Returns:
	//   - mgl32.Vec3: colour as (r, g, b)
	Color() mgl32.Vec3

	// Uniform returns the GPU representation of the light.
	//
	// Returns:
	//   - GPULightUniform: the uniform ready to Marshal
	Uniform() GPULightUniform
}

var _ Light = &lightImpl{}

// NewLight creates a white light at (2, 2, 2).
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		position: mgl32.Vec3{2, 2, 2},
		color:    mgl32.Vec3{1, 1, 1},
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Uniform() GPULightUniform {
	return GPULightUniform{
		Position: l.position,
		Color:    l.color,
	}
}
