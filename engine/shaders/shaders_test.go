package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrograms_ShareInterface(t *testing.T) {
	for name, src := range map[string]string{"lit": Lit, "bw": BlackAndWhite} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, src, "fn "+VertexEntryPoint+"(")
			assert.Contains(t, src, "fn "+FragmentEntryPoint+"(")
			assert.Contains(t, src, "@group(0) @binding(3) var s_normal: sampler;")
			assert.Contains(t, src, "@group(1) @binding(0) var<uniform> camera: CameraUniform;")
			assert.Contains(t, src, "@group(2) @binding(0) var<uniform> light: LightUniform;")
			assert.Contains(t, src, "@location(11) normal_matrix_2: vec3<f32>")
		})
	}
	assert.NotEqual(t, Lit, BlackAndWhite)
	assert.Contains(t, BlackAndWhite, "luma")
}
