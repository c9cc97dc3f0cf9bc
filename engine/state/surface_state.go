package state

// SurfaceState tracks whether the window surface can be drawn to.
type SurfaceState int

const (
	// SurfaceUnconfigured means the surface has no drawable size, e.g. while minimized.
	SurfaceUnconfigured SurfaceState = iota
	// SurfaceReady means frames can be acquired.
	SurfaceReady
	// SurfaceReconfiguring means the last acquire reported the surface outdated or lost;
	// the next render reconfigures it before drawing.
	SurfaceReconfiguring
)

func (s SurfaceState) String() string {
	switch s {
	case SurfaceUnconfigured:
		return "unconfigured"
	case SurfaceReady:
		return "ready"
	case SurfaceReconfiguring:
		return "reconfiguring"
	default:
		return "unknown"
	}
}
