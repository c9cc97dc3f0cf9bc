package loader

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/model"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/material"

	"github.com/cogentcore/webgpu/wgpu"
)

// Uploader is the slice of the Renderer the Loader needs to move assets onto the GPU.
type Uploader interface {
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, instanceData []byte, instanceCount int) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
}

// MaterialSource names the image files a material is built from.
// An empty path selects the procedural fallback for that slot.
type MaterialSource struct {
	Name        string
	DiffusePath string
	NormalPath  string
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	uploader Uploader
	logger   common.Logger

	workers        int
	maxTextureSize int
	pool           worker.DynamicWorkerPool

	modelCache   map[string]model.Model
	textureCache map[textureKey]*common.TextureStagingData

	backend textureBackend
}

type textureKey struct {
	path   string
	format wgpu.TextureFormat
}

// Loader builds the scene's assets: decodes material textures (in parallel), builds the
// instanced cube model and uploads both to the GPU when an Uploader is configured.
// Decoded textures and built models are cached.
type Loader interface {
	// LoadTexture decodes one image file. Results are cached by path and format.
	//
	// Parameters:
	//   - path: the image file path
	//   - format: RGBA8UnormSrgb for colour data, RGBA8Unorm for normal maps
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded pixels
	//   - error: error if the file cannot be read or decoded
	LoadTexture(path string, format wgpu.TextureFormat) (*common.TextureStagingData, error)

	// LoadMaterial decodes the diffuse and normal textures of src concurrently on the
	// worker pool, substituting procedural textures for empty paths, and uploads them
	// as a material bind group when an Uploader is configured.
	//
	// Parameters:
	//   - src: the material name and texture paths
	//
	// Returns:
	//   - material.Material: the material
	//   - error: every decode or upload failure, joined
	LoadMaterial(src MaterialSource) (material.Material, error)

	// LoadCube builds a cube model drawn once per instance and uploads its vertex,
	// index and instance buffers when an Uploader is configured. The model is cached by name.
	//
	// Parameters:
	//   - name: the model name and cache key
	//   - halfExtent: half the cube side length
	//   - instances: where to draw the cube
	//   - mat: the material to shade it with
	//
	// Returns:
	//   - model.Model: the model
	//   - error: error if GPU upload fails
	LoadCube(name string, halfExtent float32, instances []model.Instance, mat material.Material) (model.Model, error)

	// InitMaterialGPU uploads a material's textures, creates its samplers and bind group,
	// and stores the resulting provider on the material. Missing textures fall back to
	// the procedural ones.
	//
	// Parameters:
	//   - mat: the material to upload
	//
	// Returns:
	//   - error: error if no Uploader is configured or GPU resource creation fails
	InitMaterialGPU(mat material.Material) error

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with its decode worker pool.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger:       common.NewNopLogger(),
		workers:      4,
		modelCache:   make(map[string]model.Model),
		textureCache: make(map[textureKey]*common.TextureStagingData),
	}
	for _, option := range options {
		option(l)
	}

	l.backend = newImageTextureBackend(l.maxTextureSize)
	// Workers idle-exit after a second, so the pool costs nothing once startup loading is done.
	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	return l
}

func (l *loader) LoadTexture(path string, format wgpu.TextureFormat) (*common.TextureStagingData, error) {
	key := textureKey{path: path, format: format}
	l.mu.RLock()
	if cached, ok := l.textureCache[key]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %s: %w", path, err)
	}
	defer f.Close()

	start := time.Now()
	tex, err := l.backend.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	l.logger.Debugf("decoded %s (%dx%d) in %s", path, tex.Width, tex.Height, time.Since(start))

	l.mu.Lock()
	l.textureCache[key] = tex
	l.mu.Unlock()
	return tex, nil
}

func (l *loader) LoadMaterial(src MaterialSource) (material.Material, error) {
	type slot struct {
		path     string
		format   wgpu.TextureFormat
		fallback func() *common.TextureStagingData
		out      *common.TextureStagingData
		err      error
	}
	slots := []*slot{
		{path: src.DiffusePath, format: wgpu.TextureFormatRGBA8UnormSrgb, fallback: func() *common.TextureStagingData { return checkerTexture(256, 32) }},
		{path: src.NormalPath, format: wgpu.TextureFormatRGBA8Unorm, fallback: flatNormalTexture},
	}

	// A WaitGroup is the barrier; the pool's own Wait only returns once workers idle-exit.
	var wg sync.WaitGroup
	for i, s := range slots {
		if s.path == "" {
			s.out = s.fallback()
			continue
		}
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				s.out, s.err = l.LoadTexture(s.path, s.format)
				return nil, s.err
			},
		})
	}
	wg.Wait()

	var errs []error
	for _, s := range slots {
		if s.err != nil {
			errs = append(errs, s.err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("material %q: %w", src.Name, err)
	}

	// The material gets its own copies so releasing its staging pixels leaves the cache intact.
	diffuse, normal := *slots[0].out, *slots[1].out
	mat := material.NewMaterial(
		material.WithName(src.Name),
		material.WithDiffuseTexture(&diffuse),
		material.WithNormalTexture(&normal),
	)
	if l.uploader == nil {
		return mat, nil
	}
	if err := l.InitMaterialGPU(mat); err != nil {
		return nil, err
	}
	return mat, nil
}

func (l *loader) LoadCube(name string, halfExtent float32, instances []model.Instance, mat material.Material) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	vertices, indices := model.Cube(halfExtent)
	mdl := model.NewModel(
		model.WithName(name),
		model.WithMesh(vertices, indices),
		model.WithInstances(instances),
		model.WithMaterial(mat),
	)

	if l.uploader != nil {
		provider := bind_group_provider.NewBindGroupProvider(name + "_mesh")
		if err := l.uploader.InitMeshBuffers(provider, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
			return nil, fmt.Errorf("failed to init mesh buffers for %q: %w", name, err)
		}
		if mdl.InstanceCount() > 0 {
			if err := l.uploader.InitInstanceBuffer(provider, mdl.InstanceData(), mdl.InstanceCount()); err != nil {
				provider.Release()
				return nil, fmt.Errorf("failed to init instance buffer for %q: %w", name, err)
			}
		}
		mdl.SetMeshProvider(provider)
	}
	l.logger.Infof("built model %q: %d vertices, %d indices, %d instances", name, mdl.VertexCount(), mdl.IndexCount(), mdl.InstanceCount())

	l.mu.Lock()
	l.modelCache[name] = mdl
	l.mu.Unlock()
	return mdl, nil
}

func (l *loader) InitMaterialGPU(mat material.Material) error {
	if l.uploader == nil {
		return errors.New("loader: cannot InitMaterialGPU without an Uploader")
	}

	provider := bind_group_provider.NewBindGroupProvider(mat.Name() + "_material")
	textures := []struct {
		binding, samplerBinding int
		tex                     *common.TextureStagingData
		fallback                func() *common.TextureStagingData
	}{
		{material.BindingDiffuseTexture, material.BindingDiffuseSampler, mat.DiffuseTexture(), func() *common.TextureStagingData { return checkerTexture(256, 32) }},
		{material.BindingNormalTexture, material.BindingNormalSampler, mat.NormalTexture(), flatNormalTexture},
	}
	for _, t := range textures {
		tex := t.tex
		if tex == nil || len(tex.Pixels) == 0 {
			tex = t.fallback()
		}
		if err := l.uploader.InitTextureView(provider, t.binding, *tex); err != nil {
			provider.Release()
			return fmt.Errorf("failed to init texture at binding %d of %q: %w", t.binding, mat.Name(), err)
		}
		if err := l.uploader.InitSampler(provider, t.samplerBinding, common.SamplerStagingData{}); err != nil {
			provider.Release()
			return fmt.Errorf("failed to init sampler at binding %d of %q: %w", t.samplerBinding, mat.Name(), err)
		}
	}

	descriptor := wgpu.BindGroupLayoutDescriptor{
		Label:   mat.Name() + "_material_layout",
		Entries: material.BindGroupLayoutEntries(),
	}
	if err := l.uploader.InitBindGroup(provider, descriptor); err != nil {
		provider.Release()
		return fmt.Errorf("failed to init material bind group for %q: %w", mat.Name(), err)
	}

	mat.SetBindGroupProvider(provider)
	mat.ReleaseStaging()
	return nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}
