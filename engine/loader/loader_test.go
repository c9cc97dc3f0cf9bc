package loader

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/model"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// fakeUploader records what the loader asks the GPU to create.
type fakeUploader struct {
	mu           sync.Mutex
	meshIndices  int
	instances    int
	textures     map[int]common.TextureStagingData
	samplers     []int
	bindGroups   []wgpu.BindGroupLayoutDescriptor
	failBindings bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{textures: make(map[int]common.TextureStagingData)}
}

func (f *fakeUploader) InitMeshBuffers(p bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meshIndices = indexCount
	p.SetMesh(nil, nil, indexCount)
	return nil
}

func (f *fakeUploader) InitInstanceBuffer(p bind_group_provider.BindGroupProvider, _ []byte, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instances = count
	p.SetInstances(nil, count)
	return nil
}

func (f *fakeUploader) InitTextureView(_ bind_group_provider.BindGroupProvider, binding int, data common.TextureStagingData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.textures[binding] = data
	return nil
}

func (f *fakeUploader) InitSampler(_ bind_group_provider.BindGroupProvider, binding int, _ common.SamplerStagingData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samplers = append(f.samplers, binding)
	return nil
}

func (f *fakeUploader) InitBindGroup(_ bind_group_provider.BindGroupProvider, d wgpu.BindGroupLayoutDescriptor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failBindings {
		return errors.New("bind group rejected")
	}
	f.bindGroups = append(f.bindGroups, d)
	return nil
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadTexture_PNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "diffuse.png", 4, 3)
	l := NewLoader()

	tex, err := l.LoadTexture(path, wgpu.TextureFormatRGBA8UnormSrgb)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), tex.Width)
	assert.Equal(t, uint32(3), tex.Height)
	assert.Len(t, tex.Pixels, 4*3*4)
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, tex.Format)
	// pixel (2, 1)
	assert.Equal(t, []byte{2, 1, 7, 255}, tex.Pixels[(1*4+2)*4:(1*4+2)*4+4])

	again, err := l.LoadTexture(path, wgpu.TextureFormatRGBA8UnormSrgb)
	require.NoError(t, err)
	assert.Same(t, tex, again)
}

func TestLoadTexture_BMP(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "normal.bmp")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:], []byte{128, 128, 255, 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, img))
	require.NoError(t, f.Close())

	tex, err := NewLoader().LoadTexture(path, wgpu.TextureFormatRGBA8Unorm)
	require.NoError(t, err)
	assert.Equal(t, []byte{128, 128, 255, 255}, tex.Pixels[:4])
}

func TestLoadTexture_Errors(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader()

	_, err := l.LoadTexture(filepath.Join(dir, "missing.png"), wgpu.TextureFormatRGBA8Unorm)
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = l.LoadTexture(garbage, wgpu.TextureFormatRGBA8Unorm)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestLoadTexture_MaxSize(t *testing.T) {
	path := writePNG(t, t.TempDir(), "big.png", 64, 16)
	tex, err := NewLoader(WithMaxTextureSize(32)).LoadTexture(path, wgpu.TextureFormatRGBA8UnormSrgb)
	require.NoError(t, err)
	assert.Equal(t, uint32(32), tex.Width)
	assert.Equal(t, uint32(8), tex.Height)
	assert.Len(t, tex.Pixels, 32*8*4)
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, limit, wantW, wantH int
	}{
		{100, 50, 0, 100, 50},
		{100, 50, 200, 100, 50},
		{100, 50, 10, 10, 5},
		{50, 100, 10, 5, 10},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.limit)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestProceduralTextures(t *testing.T) {
	c := checkerTexture(64, 32)
	assert.Len(t, c.Pixels, 64*64*4)
	assert.NotEqual(t, c.Pixels[0:4], c.Pixels[32*4:32*4+4])
	assert.Equal(t, c.Pixels[0:4], c.Pixels[(32*64+32)*4:(32*64+32)*4+4])

	n := flatNormalTexture()
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, n.Format)
	assert.Equal(t, []byte{128, 128, 255, 255}, n.Pixels)
}

func TestLoadMaterial_Fallbacks(t *testing.T) {
	mat, err := NewLoader().LoadMaterial(MaterialSource{Name: "plain"})
	require.NoError(t, err)
	assert.Equal(t, "plain", mat.Name())
	assert.Equal(t, uint32(256), mat.DiffuseTexture().Width)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, mat.NormalTexture().Format)
	assert.Nil(t, mat.BindGroupProvider())
}

func TestLoadMaterial_DecodesInParallelAndUploads(t *testing.T) {
	dir := t.TempDir()
	diffuse := writePNG(t, dir, "d.png", 8, 8)
	normal := writePNG(t, dir, "n.png", 4, 4)
	up := newFakeUploader()
	l := NewLoader(WithUploader(up), WithWorkers(2))

	mat, err := l.LoadMaterial(MaterialSource{Name: "cube", DiffusePath: diffuse, NormalPath: normal})
	require.NoError(t, err)

	require.NotNil(t, mat.BindGroupProvider())
	assert.Equal(t, "cube_material", mat.BindGroupProvider().Label())
	assert.Equal(t, uint32(8), up.textures[material.BindingDiffuseTexture].Width)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, up.textures[material.BindingNormalTexture].Format)
	assert.ElementsMatch(t, []int{material.BindingDiffuseSampler, material.BindingNormalSampler}, up.samplers)
	require.Len(t, up.bindGroups, 1)
	assert.Len(t, up.bindGroups[0].Entries, 4)

	// staging pixels are dropped from the material but the decode cache still has them
	assert.Nil(t, mat.DiffuseTexture().Pixels)
	cached, err := l.LoadTexture(diffuse, wgpu.TextureFormatRGBA8UnormSrgb)
	require.NoError(t, err)
	assert.Len(t, cached.Pixels, 8*8*4)
}

func TestLoadMaterial_JoinsErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader().LoadMaterial(MaterialSource{
		Name:        "broken",
		DiffusePath: filepath.Join(dir, "a.png"),
		NormalPath:  filepath.Join(dir, "b.png"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "a.png")
	assert.Contains(t, err.Error(), "b.png")
}

func TestInitMaterialGPU(t *testing.T) {
	assert.Error(t, NewLoader().InitMaterialGPU(material.NewMaterial()))

	up := newFakeUploader()
	up.failBindings = true
	mat := material.NewMaterial(material.WithName("m"))
	err := NewLoader(WithUploader(up)).InitMaterialGPU(mat)
	assert.ErrorContains(t, err, "bind group rejected")
	assert.Nil(t, mat.BindGroupProvider())
	// textures that were never staged fall back to procedural ones
	assert.Equal(t, uint32(1), up.textures[material.BindingNormalTexture].Width)
}

func TestLoadCube(t *testing.T) {
	up := newFakeUploader()
	l := NewLoader(WithUploader(up))
	mat := material.NewMaterial()

	m, err := l.LoadCube("cube", 1, model.GridInstances(10, 3), mat)
	require.NoError(t, err)
	assert.Equal(t, 36, up.meshIndices)
	assert.Equal(t, 100, up.instances)
	require.NotNil(t, m.MeshProvider())
	assert.Equal(t, 100, m.MeshProvider().InstanceCount())
	assert.Same(t, mat, m.Material())

	again, err := l.LoadCube("cube", 2, nil, nil)
	require.NoError(t, err)
	assert.Same(t, m, again)
	assert.Same(t, m, l.Get("cube"))
	assert.Len(t, l.Models(), 1)
	assert.Nil(t, l.Get("missing"))
}

func TestLoadCube_WithoutUploader(t *testing.T) {
	m, err := NewLoader(WithModel("pre", model.NewModel())).LoadCube("cube", 1, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, m.MeshProvider())
	assert.Zero(t, m.InstanceCount())
}
