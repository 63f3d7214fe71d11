package scene

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gles/engine/light"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithZOrder sets the draw order key of the scene.
//
// Parameters:
//   - z: lower values render first
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithZOrder(z int) SceneBuilderOption {
	return func(s *scene) {
		s.zOrder = z
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.initial = append(s.initial, objects...)
	}
}

// WithQueueOptions forwards options to the scene's RenderQueue.
//
// Parameters:
//   - options: RenderQueue builder options such as queue.WithCapacity
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithQueueOptions(options ...queue.RenderQueueBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.queueOpts = append(s.queueOpts, options...)
	}
}

// WithUpdateWorkers sets the number of worker goroutines used by Update.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of update workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithUpdateWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.updateWorkers = max(n, 1)
	}
}

// WithCullingDisabled disables frustum culling for the scene. By default culling is enabled.
//
// Parameters:
//   - disabled: true to disable frustum culling, false to enable it (default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}

// WithLights adds lights to the scene at construction. Nil lights are skipped.
//
// Parameters:
//   - lights: the lights to add, in key light priority order
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}
