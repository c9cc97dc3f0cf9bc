package material

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/google/uuid"
)

// material is the implementation of the Material interface.
type material struct {
	id                uuid.UUID
	name              string
	diffuseTexture    *common.TextureStagingData
	normalTexture     *common.TextureStagingData
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material is the surface description bound as group 0: a diffuse texture and a
// tangent-space normal map, each with its own sampler.
//
// Texture pixels are set at load time and are read-only through this interface. The
// bind group provider is set afterwards, once the Loader has uploaded the textures.
type Material interface {
	// ID retrieves the unique identifier assigned at construction.
	//
	// Returns:
	//   - uuid.UUID: the material id
	ID() uuid.UUID

	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// DiffuseTexture retrieves the staged diffuse pixels, or nil if none is set.
	//
	// Returns:
	//   - *common.TextureStagingData: the diffuse texture, or nil
	DiffuseTexture() *common.TextureStagingData

	// NormalTexture retrieves the staged normal map pixels, or nil if none is set.
	//
	// Returns:
	//   - *common.TextureStagingData: the normal texture, or nil
	NormalTexture() *common.TextureStagingData

	// BindGroupProvider retrieves the provider holding the uploaded textures and samplers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider, or nil if not yet uploaded
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the provider containing the GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)

	// ReleaseStaging drops the CPU copies of the texture pixels once they live on the GPU.
	// Width, height and format are kept.
	ReleaseStaging()
}

var _ Material = &material{}

// NewMaterial creates a new Material with a fresh random id.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		id: uuid.New(),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.name == "" {
		m.name = "material-" + m.id.String()[:8]
	}
	return m
}

func (m *material) ID() uuid.UUID {
	return m.id
}

func (m *material) Name() string {
	return m.name
}

func (m *material) DiffuseTexture() *common.TextureStagingData {
	return m.diffuseTexture
}

func (m *material) NormalTexture() *common.TextureStagingData {
	return m.normalTexture
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}

func (m *material) ReleaseStaging() {
	if m.diffuseTexture != nil {
		m.diffuseTexture.Pixels = nil
	}
	if m.normalTexture != nil {
		m.normalTexture.Pixels = nil
	}
}
