// Command flycam opens a window and flies a first-person camera over an instanced grid of
// lit, normal-mapped cubes. Tab swaps to the black-and-white pipeline, Escape quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/config"
	"github.com/Carmen-Shannon/oxy-flycam/engine"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/light"
	"github.com/Carmen-Shannon/oxy-flycam/engine/loader"
	"github.com/Carmen-Shannon/oxy-flycam/engine/model"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-flycam/engine/shaders"
	"github.com/Carmen-Shannon/oxy-flycam/engine/state"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	dumpConfig := flag.Bool("dump-config", false, "print the effective config as TOML and exit")
	watch := flag.Bool("watch", false, "reload camera tuning and present mode when the config file changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *dumpConfig {
		out, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}

	logger := common.NewDefaultLogger("flycam", cfg.Log.Debug || *debug)
	if err := run(cfg, *configPath, *watch, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// liveHandler applies reloaded config between frames, on the loop thread.
type liveHandler struct {
	state.State
	updates     <-chan config.Config
	controller  camera.CameraController
	renderer    renderer.Renderer
	window      window.Window
	presentMode renderer.PresentMode
	logger      common.Logger
}

func (h *liveHandler) OnUpdate(dt float32) {
	select {
	case cfg, ok := <-h.updates:
		if ok {
			h.apply(cfg)
		}
	default:
	}
	h.State.OnUpdate(dt)
}

func (h *liveHandler) apply(cfg config.Config) {
	h.controller.SetTuning(cfg.Camera.Speed, cfg.Camera.Sensitivity)
	mode, _ := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	if mode != h.presentMode {
		h.presentMode = mode
		h.renderer.SetPresentMode(mode)
		// the present mode only takes effect when the surface is configured again
		if err := h.State.OnResize(h.window.Width(), h.window.Height()); err != nil {
			h.logger.Warnf("reconfigure surface for %s: %v", mode, err)
		}
	}
	h.logger.Infof("config reloaded: speed %v, sensitivity %v, %s", cfg.Camera.Speed, cfg.Camera.Sensitivity, mode)
}

func run(cfg config.Config, configPath string, watch bool, logger common.Logger) error {
	var updates <-chan config.Config
	if watch && configPath != "" {
		w, err := config.Watch(configPath, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		updates = w.Updates()
	}

	// ── Window ──────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(cfg.Window.MinWidth, cfg.Window.MinHeight),
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────
	presentMode, _ := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	layouts := state.BindGroupLayouts()
	programs := []struct {
		variant renderer.PipelineVariant
		source  string
	}{
		{renderer.PipelineDefault, shaders.Lit},
		{renderer.PipelineExperimental, shaders.BlackAndWhite},
	}
	for _, prog := range programs {
		p := pipeline.NewPipeline(prog.variant.String(),
			pipeline.WithSource(prog.source),
			pipeline.WithEntryPoints(shaders.VertexEntryPoint, shaders.FragmentEntryPoint),
			pipeline.WithVertexLayouts(model.VertexBufferLayout(), model.InstanceBufferLayout()),
			pipeline.WithBindGroupLayouts(layouts...),
		)
		if err := r.RegisterPipeline(prog.variant, p); err != nil {
			return fmt.Errorf("register %s pipeline: %w", prog.variant, err)
		}
	}

	// ── Scene ───────────────────────────────────────────────────────
	ld := loader.NewLoader(
		loader.WithUploader(r),
		loader.WithLogger(logger),
		loader.WithWorkers(cfg.Scene.LoaderWorkers),
		loader.WithMaxTextureSize(cfg.Scene.MaxTextureSize),
	)
	mat, err := ld.LoadMaterial(loader.MaterialSource{
		Name:        "cube",
		DiffusePath: cfg.Scene.DiffuseTexture,
		NormalPath:  cfg.Scene.NormalTexture,
	})
	if err != nil {
		return err
	}
	defer mat.BindGroupProvider().Release()

	cube, err := ld.LoadCube("cube", cfg.Scene.CubeHalfExtent, model.GridInstances(cfg.Scene.InstancesPerRow, cfg.Scene.Spacing), mat)
	if err != nil {
		return err
	}
	defer cube.MeshProvider().Release()

	// ── Camera + Light ──────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithPosition(mgl32.Vec3(cfg.Camera.Position)),
		camera.WithYaw(mgl32.DegToRad(cfg.Camera.Yaw)),
		camera.WithPitch(mgl32.DegToRad(cfg.Camera.Pitch)),
	)
	proj, err := camera.NewProjection(win.Width(), win.Height(),
		camera.WithFovy(mgl32.DegToRad(cfg.Camera.Fovy)),
		camera.WithClipPlanes(cfg.Camera.ZNear, cfg.Camera.ZFar),
	)
	if err != nil {
		return err
	}
	controller := camera.NewCameraController(
		camera.WithSpeed(cfg.Camera.Speed),
		camera.WithSensitivity(cfg.Camera.Sensitivity),
	)
	lamp := light.NewLight(
		light.WithPosition(mgl32.Vec3(cfg.Scene.LightPosition)),
		light.WithColor(mgl32.Vec3(cfg.Scene.LightColor)),
	)

	// ── State + Engine ──────────────────────────────────────────────
	variant, _ := renderer.ParsePipelineVariant(cfg.Renderer.Pipeline)
	st, err := state.NewState(r, win.Width(), win.Height(),
		state.WithCamera(cam),
		state.WithProjection(proj),
		state.WithController(controller),
		state.WithLight(lamp),
		state.WithModel(cube),
		state.WithPipelineVariant(variant),
		state.WithRedrawHook(win.RequestRedraw),
		state.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create state: %w", err)
	}
	defer st.Release()

	eng, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithHandler(&liveHandler{
			State:       st,
			updates:     updates,
			controller:  controller,
			renderer:    r,
			window:      win,
			presentMode: presentMode,
			logger:      logger,
		}),
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Log.Profile),
		engine.WithRenderFrameLimit(cfg.Renderer.FrameLimit),
	)
	if err != nil {
		return err
	}

	logger.Infof("flying over %d cubes, %s pipeline, %s", cube.InstanceCount(), variant, presentMode)
	return eng.Run()
}
