package renderer

import (
	"fmt"
	"reflect"

	"github.com/cogentcore/webgpu/wgpu"
)

// acquireSurfaceTexture fetches the next swapchain texture for a surface configured at
// width x height.
//
// The bindings drop the acquire status and hand back a texture with a NULL handle when
// the surface is outdated, lost or timed out, so a failed acquire is recognised here and
// reported as ErrSurfaceOutdated, which makes the caller reconfigure. A framebuffer that
// no longer matches the configured size is reported the same way before acquiring.
func acquireSurfaceTexture(acquire func() (*wgpu.Texture, error), width, height int, drawableSize func() (int, int)) (*wgpu.Texture, error) {
	if drawableSize != nil {
		if w, h := drawableSize(); w != width || h != height {
			return nil, fmt.Errorf("%w: configured %dx%d, framebuffer %dx%d", ErrSurfaceOutdated, width, height, w, h)
		}
	}

	tex, err := acquire()
	if err != nil {
		return nil, classifySurfaceError(err)
	}
	if nullTexture(tex) {
		return nil, fmt.Errorf("%w: no surface texture acquired", ErrSurfaceOutdated)
	}
	return tex, nil
}

// nullTexture reports whether tex wraps no native texture. Calling any method on such a
// texture aborts inside wgpu-native.
func nullTexture(tex *wgpu.Texture) bool {
	if tex == nil {
		return true
	}
	ref := reflect.ValueOf(tex).Elem().FieldByName("ref")
	return ref.IsValid() && ref.Kind() == reflect.Pointer && ref.IsNil()
}
