// Package config loads the flycam settings from TOML. Keys missing from the file keep
// their Default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config is the complete set of runtime settings.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Renderer RendererConfig `toml:"renderer"`
	Scene    SceneConfig    `toml:"scene"`
	Log      LogConfig      `toml:"log"`
}

// WindowConfig sizes and titles the window.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	MinWidth  int    `toml:"min_width"`
	MinHeight int    `toml:"min_height"`
}

// CameraConfig is the starting camera pose, lens and controller tuning. Angles are in degrees.
type CameraConfig struct {
	Position    [3]float32 `toml:"position"`
	Yaw         float32    `toml:"yaw"`
	Pitch       float32    `toml:"pitch"`
	Fovy        float32    `toml:"fovy"`
	ZNear       float32    `toml:"znear"`
	ZFar        float32    `toml:"zfar"`
	Speed       float32    `toml:"speed"`
	Sensitivity float32    `toml:"sensitivity"`
}

// RendererConfig selects presentation behaviour.
type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode string `toml:"present_mode"`
	// Pipeline is the variant drawn at startup, "default" or "experimental".
	Pipeline      string  `toml:"pipeline"`
	ForceSoftware bool    `toml:"force_software"`
	FrameLimit    float64 `toml:"frame_limit"`
}

// SceneConfig describes the instanced cube grid, its material and the light.
type SceneConfig struct {
	InstancesPerRow int        `toml:"instances_per_row"`
	Spacing         float32    `toml:"spacing"`
	CubeHalfExtent  float32    `toml:"cube_half_extent"`
	DiffuseTexture  string     `toml:"diffuse_texture"`
	NormalTexture   string     `toml:"normal_texture"`
	MaxTextureSize  int        `toml:"max_texture_size"`
	LoaderWorkers   int        `toml:"loader_workers"`
	LightPosition   [3]float32 `toml:"light_position"`
	LightColor      [3]float32 `toml:"light_color"`
}

// LogConfig controls logging verbosity and frame statistics.
type LogConfig struct {
	Debug   bool `toml:"debug"`
	Profile bool `toml:"profile"`
}

// Default returns the built-in settings: a 1280x720 window, the camera at (0, 5, 10)
// looking down -Z, vsync, and a 10x10 grid of cubes three units apart.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "oxy-flycam",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 200,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 5, 10},
			Yaw:         -90,
			Pitch:       -20,
			Fovy:        45,
			ZNear:       0.1,
			ZFar:        100,
			Speed:       4,
			Sensitivity: 1,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			Pipeline:    "default",
		},
		Scene: SceneConfig{
			InstancesPerRow: 10,
			Spacing:         3,
			CubeHalfExtent:  0.5,
			LoaderWorkers:   4,
			LightPosition:   [3]float32{2, 2, 2},
			LightColor:      [3]float32{1, 1, 1},
		},
	}
}

// Parse decodes TOML over Default and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the parsed settings
//   - error: a decode error or a validation error wrapping ErrInvalid
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Config{}, fmt.Errorf("config line %d column %d: %w", row, col, err)
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the TOML file at path. An empty path returns Default.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the loaded settings
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as TOML, e.g. to write out a starting file.
//
// Returns:
//   - []byte: the TOML document
//   - error: encode error
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks every setting and reports all problems at once.
//
// Returns:
//   - error: nil, or the joined problems each wrapping ErrInvalid
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.MinWidth >= 0 && c.Window.MinHeight >= 0, "window minimum size must not be negative")

	check(c.Camera.Fovy > 0 && c.Camera.Fovy < 180, "camera.fovy %v must be in (0, 180)", c.Camera.Fovy)
	check(c.Camera.ZNear > 0 && c.Camera.ZNear < c.Camera.ZFar, "camera clip planes must satisfy 0 < znear (%v) < zfar (%v)", c.Camera.ZNear, c.Camera.ZFar)
	check(c.Camera.Speed > 0, "camera.speed %v must be positive", c.Camera.Speed)
	check(c.Camera.Sensitivity > 0, "camera.sensitivity %v must be positive", c.Camera.Sensitivity)

	check(c.Renderer.PresentMode == "vsync" || c.Renderer.PresentMode == "uncapped",
		"renderer.present_mode %q must be vsync or uncapped", c.Renderer.PresentMode)
	check(c.Renderer.Pipeline == "default" || c.Renderer.Pipeline == "experimental",
		"renderer.pipeline %q must be default or experimental", c.Renderer.Pipeline)
	check(c.Renderer.FrameLimit >= 0, "renderer.frame_limit must not be negative")

	check(c.Scene.InstancesPerRow > 0, "scene.instances_per_row %d must be positive", c.Scene.InstancesPerRow)
	check(c.Scene.Spacing > 0, "scene.spacing %v must be positive", c.Scene.Spacing)
	check(c.Scene.CubeHalfExtent > 0, "scene.cube_half_extent %v must be positive", c.Scene.CubeHalfExtent)
	check(c.Scene.MaxTextureSize >= 0, "scene.max_texture_size must not be negative")
	check(c.Scene.LoaderWorkers > 0, "scene.loader_workers %d must be positive", c.Scene.LoaderWorkers)

	return errors.Join(errs...)
}
