package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 5, 10}, c.Position())
	assert.InDelta(t, -math.Pi/2, c.Yaw(), eps)
	assert.InDelta(t, mgl32.DegToRad(-20), c.Pitch(), eps)
}

func TestNewCamera_ClampsPitchOption(t *testing.T) {
	c := NewCamera(WithPitch(4))
	assert.Equal(t, common.HalfPi, c.Pitch())

	c.SetPitch(-4)
	assert.Equal(t, -common.HalfPi, c.Pitch())
}

func TestCamera_ViewMatrixIsPure(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}), WithYaw(0.4), WithPitch(0.1))
	first := c.ViewMatrix()
	second := c.ViewMatrix()
	assert.Equal(t, first, second)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Position())
}

func TestNewProjection_Validation(t *testing.T) {
	_, err := NewProjection(800, 600, WithClipPlanes(0, 100))
	assert.ErrorIs(t, err, ErrInvalidClipPlanes)

	_, err = NewProjection(800, 600, WithClipPlanes(10, 1))
	assert.ErrorIs(t, err, ErrInvalidClipPlanes)

	_, err = NewProjection(800, 600, WithFovy(0))
	assert.ErrorIs(t, err, ErrInvalidFovy)

	p, err := NewProjection(800, 600)
	require.NoError(t, err)
	assert.InDelta(t, 800.0/600.0, p.Aspect(), eps)
	assert.InDelta(t, mgl32.DegToRad(45), p.Fovy(), eps)
	assert.Equal(t, float32(0.1), p.ZNear())
	assert.Equal(t, float32(100), p.ZFar())
}

func TestProjection_ResizeIgnoresZeroSize(t *testing.T) {
	p, err := NewProjection(800, 600)
	require.NoError(t, err)

	p.Resize(0, 600)
	assert.InDelta(t, 800.0/600.0, p.Aspect(), eps)
	p.Resize(800, 0)
	assert.InDelta(t, 800.0/600.0, p.Aspect(), eps)

	p.Resize(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, p.Aspect(), eps)
}

func TestNewProjection_ZeroSizeKeepsUnitAspect(t *testing.T) {
	p, err := NewProjection(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), p.Aspect())
}

func TestGPUCameraUniform_Update(t *testing.T) {
	c := NewCamera()
	p, err := NewProjection(800, 600)
	require.NoError(t, err)

	u := NewGPUCameraUniform()
	assert.Equal(t, [16]float32(mgl32.Ident4()), u.ViewProj)

	u.Update(c, p)
	want := p.ProjectionMatrix().Mul4(c.ViewMatrix())
	assert.Equal(t, [16]float32(want), u.ViewProj)
	assert.Equal(t, [4]float32{0, 5, 10, 1}, u.ViewPos)
}

func TestGPUCameraUniform_Marshal(t *testing.T) {
	u := NewGPUCameraUniform()
	u.ViewProj[3] = 7
	u.ViewPos = [4]float32{1, 2, 3, 1}

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(7), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[76:])))
	assert.Contains(t, GPUCameraUniformSource, "view_proj: mat4x4<f32>")
}
