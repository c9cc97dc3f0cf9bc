package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes, std140 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned snapshot of the camera that the shaders observe.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 80 bytes.
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset  0: projection × view (mat4x4<f32>, column-major)
	ViewPos  [4]float32  // offset 64: world-space camera position, w = 1 (vec4<f32>)
}

// NewGPUCameraUniform returns a uniform holding the identity transform at the origin.
//
// Returns:
//   - GPUCameraUniform: the initial uniform
func NewGPUCameraUniform() GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj: mgl32.Ident4(),
		ViewPos:  [4]float32{0, 0, 0, 1},
	}
}

// Update recomputes the uniform from the camera and projection.
// ViewProj becomes projection × view and ViewPos the camera position with w = 1.
//
// Parameters:
//   - cam: the camera to snapshot
//   - proj: the projection to snapshot
func (g *GPUCameraUniform) Update(cam Camera, proj Projection) {
	g.ViewProj = proj.ProjectionMatrix().Mul4(cam.ViewMatrix())
	g.ViewPos = cam.Position().Vec4(1)
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.ViewPos[i]))
	}
	return buf
}

// BindGroupLayoutEntries describes the camera bind group: a single uniform buffer at
// binding 0 holding a GPUCameraUniform, read by both shader stages.
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: the layout entries
func BindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	e := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	e.Buffer.Type = wgpu.BufferBindingTypeUniform
	e.Buffer.MinBindingSize = 80
	return []wgpu.BindGroupLayoutEntry{e}
}
