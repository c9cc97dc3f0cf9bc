package state

import (
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/light"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group indices shared by every scene pipeline.
const (
	GroupMaterial = iota
	GroupCamera
	GroupLight
)

// BindGroupLayouts returns the layouts of groups 0 (material), 1 (camera) and 2 (light)
// in group order. Both pipeline variants are built against these.
//
// Returns:
//   - []wgpu.BindGroupLayoutDescriptor: one descriptor per group
func BindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return []wgpu.BindGroupLayoutDescriptor{
		GroupMaterial: {Label: "material_layout", Entries: material.BindGroupLayoutEntries()},
		GroupCamera:   {Label: "camera_layout", Entries: camera.BindGroupLayoutEntries()},
		GroupLight:    {Label: "light_layout", Entries: light.BindGroupLayoutEntries()},
	}
}
