// Package shaders holds the WGSL programs the scene is drawn with. Both share the same
// vertex stage, vertex/instance inputs and bind groups (0 material, 1 camera, 2 light),
// so either can be bound against the same pipeline layout.
package shaders

import _ "embed"

// Entry points shared by every program in this package.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// Lit is the default program: diffuse texture lit by the point light with Blinn-Phong
// shading in tangent space, perturbed by the normal map.
//
//go:embed shader.wgsl
var Lit string

// BlackAndWhite is the experimental program: diffuse lighting only, output as luma.
//
//go:embed bw_shader.wgsl
var BlackAndWhite string
