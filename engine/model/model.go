package model

import (
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/material"
	"github.com/google/uuid"
)

// model is the implementation of the Model interface.
type model struct {
	id                      uuid.UUID
	name                    string
	material                material.Material
	meshProvider            bind_group_provider.BindGroupProvider
	instances               []Instance
	vertexData, indexData   []byte
	instanceData            []byte
	indexCount, vertexCount int
}

// Model is a GPU-ready mesh drawn many times per frame: packed vertex and index data,
// the instance transforms it is repeated at, and the material it is shaded with.
// The Loader builds one and fills in its mesh provider after upload.
type Model interface {
	// ID retrieves the unique identifier assigned at construction.
	//
	// Returns:
	//   - uuid.UUID: the model id
	ID() uuid.UUID

	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// VertexData returns the packed GPUVertex bytes for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// VertexCount returns the number of vertices in VertexData.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexData returns the packed uint32 index bytes for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Instances returns the world placements of this model.
	//
	// Returns:
	//   - []Instance: the instances
	Instances() []Instance

	// InstanceData returns the packed GPUInstance bytes for Instances.
	//
	// Returns:
	//   - []byte: the instance data
	InstanceData() []byte

	// InstanceCount returns the number of instances.
	//
	// Returns:
	//   - int: the instance count
	InstanceCount() int

	// Material returns the material the model is shaded with, or nil.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// MeshProvider retrieves the BindGroupProvider holding the vertex, index and instance buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider, or nil before upload
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider sets the provider once the buffers have been uploaded.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Model = &model{}

// NewModel creates a new Model with a fresh random id.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the new model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		id: uuid.New(),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.name == "" {
		m.name = "model-" + m.id.String()[:8]
	}
	return m
}

func (m *model) ID() uuid.UUID {
	return m.id
}

func (m *model) Name() string {
	return m.name
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) Instances() []Instance {
	return m.instances
}

func (m *model) InstanceData() []byte {
	return m.instanceData
}

func (m *model) InstanceCount() int {
	return len(m.instances)
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}
