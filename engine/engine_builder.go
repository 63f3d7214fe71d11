package engine

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/config"
	"github.com/Carmen-Shannon/oxy-gles/engine/loader"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
	"github.com/Carmen-Shannon/oxy-gles/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickDuration(fps)
	}
}

// WithWindow sets the window the engine renders into and presents to.
//
// Parameters:
//   - w: a configured window, typically a window.Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the render context instead of creating one on the window.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithRendererOptions forwards options to the renderer the engine creates on the window.
// Ignored when WithRenderer is given.
//
// Parameters:
//   - options: renderer builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.rendererOptions = append(e.rendererOptions, options...)
	}
}

// WithLoader sets the effect loader instead of creating a file loader on the renderer.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithConfig applies the engine and renderer sections of a configuration file.
//
// Parameters:
//   - cfg: a configuration returned by config.Load or config.Default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickDuration(cfg.Engine.TickRate)
		e.renderFrameLimit = frameDuration(cfg.Engine.FrameLimit)
		e.profilingEnabled.Store(cfg.Engine.Profiling)
		if cfg.Engine.LoaderWorkers > 0 {
			e.loaderWorkers = cfg.Engine.LoaderWorkers
		}

		rc := cfg.Renderer
		e.rendererOptions = append(e.rendererOptions,
			renderer.WithDrawCallCapacity(rc.DrawCallCapacity),
			renderer.WithQueueCapacity(rc.QueueCapacity),
			renderer.WithMaxParticles(rc.MaxParticles),
			renderer.WithTargetOptions(
				target.WithGeneralDivisor(rc.GeneralTargetDivisor),
				target.WithPostDivisors(rc.PostSmallDivisor, rc.PostLargeDivisor),
				target.WithExhaustionPolicy(rc.Policy()),
			),
		)
		if rc.ScreenWidth > 0 && rc.ScreenHeight > 0 {
			e.rendererOptions = append(e.rendererOptions, renderer.WithScreenSize(rc.ScreenWidth, rc.ScreenHeight))
		}
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// Scenes are rendered in ascending key order during the render loop.
//
// Parameters:
//   - key: the z-index determining render order (lower renders first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		s.SetZOrder(key)
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}
