package camera

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidClipPlanes is returned when the clip planes violate 0 < znear < zfar.
	ErrInvalidClipPlanes = errors.New("camera: clip planes must satisfy 0 < znear < zfar")
	// ErrInvalidFovy is returned when the field of view is outside (0, π).
	ErrInvalidFovy = errors.New("camera: fovy must be within (0, pi)")
)

type projectionImpl struct {
	mu *sync.Mutex

	aspect float32
	fovy   float32
	znear  float32
	zfar   float32
}

// Projection holds the perspective parameters of the camera.
// Only the aspect ratio changes after construction, through Resize.
type Projection interface {
	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Fovy returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fovy() float32

	// ZNear returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	ZNear() float32

	// ZFar returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	ZFar() float32

	// Resize recomputes the aspect ratio for a new viewport size.
	// It is a no-op when either dimension is not positive, keeping the last valid aspect.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	Resize(width, height int)

	// ProjectionMatrix returns the perspective projection with depth mapped to [0, 1].
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix() mgl32.Mat4
}

var _ Projection = &projectionImpl{}

// NewProjection creates a Projection for a viewport of the given size.
// Defaults are a 45° vertical field of view with clip planes at 0.1 and 100.
// A non-positive size leaves the aspect at 1 until the first valid Resize.
//
// Parameters:
//   - width: initial viewport width in pixels
//   - height: initial viewport height in pixels
//   - options: functional options to configure the projection
//
// Returns:
//   - Projection: the newly created projection
//   - error: ErrInvalidClipPlanes or ErrInvalidFovy if the options are out of range
func NewProjection(width, height int, options ...ProjectionBuilderOption) (Projection, error) {
	p := &projectionImpl{
		mu:     &sync.Mutex{},
		aspect: 1,
		fovy:   mgl32.DegToRad(45),
		znear:  0.1,
		zfar:   100,
	}
	for _, option := range options {
		option(p)
	}

	if !(p.znear > 0 && p.znear < p.zfar) {
		return nil, fmt.Errorf("%w: znear=%v zfar=%v", ErrInvalidClipPlanes, p.znear, p.zfar)
	}
	if !(p.fovy > 0 && p.fovy < math.Pi) {
		return nil, fmt.Errorf("%w: fovy=%v", ErrInvalidFovy, p.fovy)
	}

	p.Resize(width, height)
	return p, nil
}

func (p *projectionImpl) Aspect() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.aspect
}

func (p *projectionImpl) Fovy() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fovy
}

func (p *projectionImpl) ZNear() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.znear
}

func (p *projectionImpl) ZFar() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.zfar
}

func (p *projectionImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aspect = float32(width) / float32(height)
}

func (p *projectionImpl) ProjectionMatrix() mgl32.Mat4 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return common.ProjectionMatrix(p.fovy, p.aspect, p.znear, p.zfar)
}
