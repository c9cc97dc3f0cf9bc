package renderer

// PipelineVariant selects which registered render pipeline draws the scene.
type PipelineVariant int

const (
	// PipelineDefault is the lit, normal-mapped pipeline.
	PipelineDefault PipelineVariant = iota
	// PipelineExperimental is the black-and-white pipeline.
	PipelineExperimental

	pipelineVariantCount
)

// Toggle returns the other variant.
func (v PipelineVariant) Toggle() PipelineVariant {
	if v == PipelineDefault {
		return PipelineExperimental
	}
	return PipelineDefault
}

// Valid reports whether v names a pipeline slot.
func (v PipelineVariant) Valid() bool {
	return v >= 0 && v < pipelineVariantCount
}

func (v PipelineVariant) String() string {
	switch v {
	case PipelineDefault:
		return "default"
	case PipelineExperimental:
		return "experimental"
	default:
		return "unknown"
	}
}

// ParsePipelineVariant maps a variant name back to its PipelineVariant. An empty name
// selects PipelineDefault.
//
// Parameters:
//   - s: "default" or "experimental"
//
// Returns:
//   - PipelineVariant: the named variant
//   - bool: false if s names no variant
func ParsePipelineVariant(s string) (PipelineVariant, bool) {
	switch s {
	case "", "default":
		return PipelineDefault, true
	case "experimental":
		return PipelineExperimental, true
	default:
		return PipelineDefault, false
	}
}
