package renderer

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSize(w, h int) func() (int, int) {
	return func() (int, int) { return w, h }
}

func TestAcquireSurfaceTexture_NullTextureIsOutdated(t *testing.T) {
	tests := []struct {
		name string
		tex  *wgpu.Texture
	}{
		{"nil texture", nil},
		{"texture without handle", &wgpu.Texture{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acquire := func() (*wgpu.Texture, error) { return tt.tex, nil }

			tex, err := acquireSurfaceTexture(acquire, 800, 600, fixedSize(800, 600))
			require.Error(t, err)
			assert.Nil(t, tex)
			assert.ErrorIs(t, err, ErrSurfaceOutdated)
			assert.True(t, IsSurfaceRecoverable(err))
			assert.False(t, IsFatal(err))
		})
	}
}

func TestAcquireSurfaceTexture_SizeMismatchSkipsAcquire(t *testing.T) {
	calls := 0
	acquire := func() (*wgpu.Texture, error) {
		calls++
		return nil, nil
	}

	_, err := acquireSurfaceTexture(acquire, 800, 600, fixedSize(1024, 768))
	assert.ErrorIs(t, err, ErrSurfaceOutdated)
	assert.ErrorContains(t, err, "1024x768")
	assert.Zero(t, calls)

	// minimized windows report a zero framebuffer
	_, err = acquireSurfaceTexture(acquire, 800, 600, fixedSize(0, 0))
	assert.ErrorIs(t, err, ErrSurfaceOutdated)
	assert.Zero(t, calls)
}

func TestAcquireSurfaceTexture_WithoutSizeSourceAcquires(t *testing.T) {
	calls := 0
	acquire := func() (*wgpu.Texture, error) {
		calls++
		return &wgpu.Texture{}, nil
	}

	_, err := acquireSurfaceTexture(acquire, 800, 600, nil)
	assert.ErrorIs(t, err, ErrSurfaceOutdated)
	assert.Equal(t, 1, calls)
}

func TestAcquireSurfaceTexture_ClassifiesAcquireErrors(t *testing.T) {
	timeout := errors.New("wgpu.(*Surface).GetCurrentTexture(): Surface timed out")
	_, err := acquireSurfaceTexture(func() (*wgpu.Texture, error) { return nil, timeout }, 800, 600, fixedSize(800, 600))
	assert.ErrorIs(t, err, ErrSurfaceTimeout)
	assert.ErrorIs(t, err, timeout)

	other := errors.New("wgpu.(*Surface).GetCurrentTexture(): invalid surface")
	_, err = acquireSurfaceTexture(func() (*wgpu.Texture, error) { return nil, other }, 800, 600, fixedSize(800, 600))
	assert.Same(t, other, err)
}

func TestNullTexture(t *testing.T) {
	assert.True(t, nullTexture(nil))
	assert.True(t, nullTexture(&wgpu.Texture{}))
}
