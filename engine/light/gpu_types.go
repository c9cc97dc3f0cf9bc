package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPULightUniformSource is the canonical WGSL definition of the LightUniform struct.
// Matches GPULightUniform layout exactly (32 bytes, each vec3 padded to 16).
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniform is the GPU-aligned representation of the scene's single point light.
// Size: 32 bytes.
type GPULightUniform struct {
	Position [3]float32 // offset  0: world-space position (vec3<f32>)
	_pad0    float32    // offset 12: padding to 16
	Color    [3]float32 // offset 16: linear RGB colour (vec3<f32>)
	_pad1    float32    // offset 28: padding to 32
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}

// BindGroupLayoutEntries describes the light bind group: one uniform buffer at binding 0.
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: the layout entries
func BindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	e := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	e.Buffer.Type = wgpu.BufferBindingTypeUniform
	e.Buffer.MinBindingSize = 32
	return []wgpu.BindGroupLayoutEntry{e}
}
