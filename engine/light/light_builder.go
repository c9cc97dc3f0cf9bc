package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - position: the light position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(position mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithColor is an option builder that sets the RGB colour of the light.
// Components are clamped to [0, 1].
//
// Parameters:
//   - color: the light colour
//
// Returns:
//   - LightBuilderOption: a function that applies the colour option to a lightImpl
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		for i := range 3 {
			l.color[i] = mgl32.Clamp(color[i], 0, 1)
		}
	}
}
