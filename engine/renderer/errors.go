package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// Surface acquisition outcomes. Outdated and Lost are recovered by reconfiguring the
// surface; Timeout skips the frame; OutOfMemory and DeviceLost end the program.
var (
	ErrSurfaceOutdated = errors.New("surface outdated")
	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceTimeout  = errors.New("surface acquire timed out")
	ErrOutOfMemory     = errors.New("gpu out of memory")
	ErrDeviceLost      = errors.New("gpu device lost")
)

var (
	// ErrPipelineNotRegistered is returned by DrawCall for a variant with no registered pipeline.
	ErrPipelineNotRegistered = errors.New("pipeline not registered")

	// ErrNoFrame is returned by DrawCall and EndFrame outside a BeginFrame / EndFrame bracket.
	ErrNoFrame = errors.New("no frame in progress")

	// ErrFrameInProgress is returned by BeginFrame while the previous frame is still unpresented.
	ErrFrameInProgress = errors.New("previous frame not yet presented")
)

// IsSurfaceRecoverable reports whether err means the surface must be reconfigured before
// the next frame.
//
// Parameters:
//   - err: the error returned by BeginFrame
//
// Returns:
//   - bool: true for ErrSurfaceOutdated and ErrSurfaceLost
func IsSurfaceRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceOutdated) || errors.Is(err, ErrSurfaceLost)
}

// IsFatal reports whether err leaves the GPU unusable.
//
// Parameters:
//   - err: the error returned by BeginFrame
//
// Returns:
//   - bool: true for ErrOutOfMemory and ErrDeviceLost
func IsFatal(err error) bool {
	return errors.Is(err, ErrOutOfMemory) || errors.Is(err, ErrDeviceLost)
}

// classifySurfaceError maps the text of a validation error raised during GetCurrentTexture
// onto the sentinels above, keeping the original error in the chain. Unknown errors are
// returned unchanged. The acquire status itself never reaches Go; acquireSurfaceTexture
// detects a failed acquire from the missing texture.
func classifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(err.Error()))
	var sentinel error
	switch {
	case strings.Contains(msg, "devicelost"):
		sentinel = ErrDeviceLost
	case strings.Contains(msg, "outofmemory"):
		sentinel = ErrOutOfMemory
	case strings.Contains(msg, "outdated"):
		sentinel = ErrSurfaceOutdated
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timedout"):
		sentinel = ErrSurfaceTimeout
	case strings.Contains(msg, "lost"):
		sentinel = ErrSurfaceLost
	default:
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
