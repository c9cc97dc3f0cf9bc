package material

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuseTexture is an option builder that sets the staged diffuse pixels.
// A zero Format is treated as sRGB RGBA8.
//
// Parameters:
//   - tex: the decoded diffuse texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse texture to a material
func WithDiffuseTexture(tex *common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseTexture = tex
	}
}

// WithNormalTexture is an option builder that sets the staged normal map pixels.
// Normal maps hold vectors, not colours, and should carry a linear format.
//
// Parameters:
//   - tex: the decoded normal map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal texture to a material
func WithNormalTexture(tex *common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.normalTexture = tex
	}
}
