package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches GPUVertex layout exactly (56 bytes, locations 0-4).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Tangent and bitangent span the texture space the normal map is sampled in.
// Size: 56 bytes (tightly packed vertex attributes, no padding).
type GPUVertex struct {
	Position  [3]float32 // offset  0: model-space position (12 bytes)
	TexCoord  [2]float32 // offset 12: UV coordinate (8 bytes)
	Normal    [3]float32 // offset 20: surface normal (12 bytes)
	Tangent   [3]float32 // offset 32: texture-space U direction (12 bytes)
	Bitangent [3]float32 // offset 44: texture-space V direction (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 56-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 56)
	putFloats(buf[0:], g.Position[:])
	putFloats(buf[12:], g.TexCoord[:])
	putFloats(buf[20:], g.Normal[:])
	putFloats(buf[32:], g.Tangent[:])
	putFloats(buf[44:], g.Bitangent[:])
	return buf
}

// VertexBufferLayout describes GPUVertex to a render pipeline as vertex slot 0.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex layout
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 56,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 44, ShaderLocation: 4},
		},
	}
}

// GPUInstanceSource is the canonical WGSL definition of the InstanceInput struct.
// Matches GPUInstance layout exactly (100 bytes, locations 5-11).
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// GPUInstance is the GPU-aligned per-instance data read from vertex slot 1.
// The normal matrix is the rotation part of Model; instances are never scaled.
// Size: 100 bytes.
type GPUInstance struct {
	Model  [16]float32 // offset  0: column-major model-to-world matrix (64 bytes)
	Normal [9]float32  // offset 64: column-major 3x3 normal matrix (36 bytes)
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 100-byte buffer ready for GPU upload.
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 100)
	putFloats(buf[0:], g.Model[:])
	putFloats(buf[64:], g.Normal[:])
	return buf
}

// InstanceBufferLayout describes GPUInstance to a render pipeline as vertex slot 1,
// stepping once per instance.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-instance layout
func InstanceBufferLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, 7)
	for i := range 4 {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * 16),
			ShaderLocation: uint32(5 + i),
		})
	}
	for i := range 3 {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x3,
			Offset:         uint64(64 + i*12),
			ShaderLocation: uint32(9 + i),
		})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: 100,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attrs,
	}
}

// MarshalVertices packs a vertex slice into one contiguous upload buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices)*56 bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*56)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices copies uint32 indices into an upload buffer in host byte order,
// which is what the GPU index format expects.
//
// Parameters:
//   - indices: the indices to pack
//
// Returns:
//   - []byte: len(indices)*4 bytes, not aliasing indices
func MarshalIndices(indices []uint32) []byte {
	return append([]byte(nil), common.SliceToBytes(indices)...)
}

// MarshalInstances packs an instance slice into one contiguous upload buffer.
//
// Parameters:
//   - instances: the GPU instances to pack
//
// Returns:
//   - []byte: len(instances)*100 bytes
func MarshalInstances(instances []GPUInstance) []byte {
	buf := make([]byte, 0, len(instances)*100)
	for i := range instances {
		buf = append(buf, instances[i].Marshal()...)
	}
	return buf
}

func putFloats(dst []byte, src []float32) {
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}
