package material

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Binding slots within the material bind group (group 0).
const (
	BindingDiffuseTexture = 0
	BindingDiffuseSampler = 1
	BindingNormalTexture  = 2
	BindingNormalSampler  = 3
)

// BindGroupLayoutEntries describes the material bind group: two filterable 2D float
// textures, each followed by its filtering sampler, visible to the fragment stage.
//
// Returns:
//   - []wgpu.BindGroupLayoutEntry: the four layout entries in binding order
func BindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	texture := func(binding uint32) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: wgpu.ShaderStageFragment}
		e.Texture.SampleType = wgpu.TextureSampleTypeFloat
		e.Texture.ViewDimension = wgpu.TextureViewDimension2D
		return e
	}
	sampler := func(binding uint32) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: wgpu.ShaderStageFragment}
		e.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		return e
	}
	return []wgpu.BindGroupLayoutEntry{
		texture(BindingDiffuseTexture),
		sampler(BindingDiffuseSampler),
		texture(BindingNormalTexture),
		sampler(BindingNormalSampler),
	}
}
