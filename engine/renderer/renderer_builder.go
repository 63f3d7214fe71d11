package renderer

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithDevice makes the renderer drive d instead of creating a backend device from the window.
//
// Parameters:
//   - d: the device to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the device option to a renderer
func WithDevice(d gpu.Device) RendererBuilderOption {
	return func(r *renderer) {
		r.device = d
	}
}

// WithScreenSize sets the initial screen size. It defaults to the window's framebuffer size.
//
// Parameters:
//   - width: the screen width in pixels
//   - height: the screen height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the screen size option to a renderer
func WithScreenSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithDrawCallCapacity sets the number of draw calls the frame pool holds.
//
// Parameters:
//   - n: the capacity, drawcall.DefaultCapacity by default
//
// Returns:
//   - RendererBuilderOption: a function that applies the capacity option to a renderer
func WithDrawCallCapacity(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.drawCallCapacity = n
	}
}

// WithQueueCapacity sets the default capacity of queues created by NewRenderQueue.
//
// Parameters:
//   - n: the capacity, queue.DefaultCapacity by default
//
// Returns:
//   - RendererBuilderOption: a function that applies the capacity option to a renderer
func WithQueueCapacity(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.queueCapacity = n
	}
}

// WithMaxParticles sets the number of particle quads the built-in particle mesh holds.
//
// Parameters:
//   - n: the particle count
//
// Returns:
//   - RendererBuilderOption: a function that applies the particle option to a renderer
func WithMaxParticles(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.maxParticles = n
	}
}

// WithTargetOptions forwards options to the shared render target pool.
//
// Parameters:
//   - options: the pool options
//
// Returns:
//   - RendererBuilderOption: a function that applies the target options to a renderer
func WithTargetOptions(options ...target.PoolBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.targetOptions = append(r.targetOptions, options...)
	}
}

// WithShaderOptions forwards options to the shader registry.
//
// Parameters:
//   - options: the registry options
//
// Returns:
//   - RendererBuilderOption: a function that applies the shader options to a renderer
func WithShaderOptions(options ...shader.RegistryBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderOptions = append(r.shaderOptions, options...)
	}
}

// WithLogCallback replaces the function load failures are reported through. It defaults to log.Printf.
//
// Parameters:
//   - fn: the logging function
//
// Returns:
//   - RendererBuilderOption: a function that applies the log callback option to a renderer
func WithLogCallback(fn func(format string, args ...any)) RendererBuilderOption {
	return func(r *renderer) {
		r.logf = fn
	}
}
