package renderer

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
)

// Surface is what a Renderer draws on. The window implements it over its OpenGL ES context;
// headless tools and tests can implement it over any gpu.Device.
type Surface interface {
	// Device returns the GPU device bound to the surface's context.
	//
	// Returns:
	//   - gpu.Device: the device, or nil when the surface has no context yet
	Device() gpu.Device

	// Width returns the drawable width in pixels.
	Width() int

	// Height returns the drawable height in pixels.
	Height() int
}
