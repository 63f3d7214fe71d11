package queue

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

// RenderQueueBuilderOption is a functional option applied to a render queue during construction via NewRenderQueue.
type RenderQueueBuilderOption func(*renderQueue)

// WithShapes sets the built-in shapes full-screen, box and particle commands draw with.
//
// Parameters:
//   - s: the shared shapes
//
// Returns:
//   - RenderQueueBuilderOption: a function that applies the shapes option to a render queue
func WithShapes(s *geometry.Shapes) RenderQueueBuilderOption {
	return func(q *renderQueue) {
		q.shapes = s
	}
}

// WithCapacity sets the render list capacity. It should match the draw call pool capacity.
//
// Parameters:
//   - n: the maximum number of commands per frame
//
// Returns:
//   - RenderQueueBuilderOption: a function that applies the capacity option to a render queue
func WithCapacity(n int) RenderQueueBuilderOption {
	return func(q *renderQueue) {
		q.capacity = n
	}
}

// WithView sets the initial view matrix.
//
// Parameters:
//   - m: the view matrix
//
// Returns:
//   - RenderQueueBuilderOption: a function that applies the view option to a render queue
func WithView(m mgl32.Mat4) RenderQueueBuilderOption {
	return func(q *renderQueue) {
		q.view = m
	}
}

// WithProjection sets the initial projection matrix.
//
// Parameters:
//   - m: the projection matrix
//
// Returns:
//   - RenderQueueBuilderOption: a function that applies the projection option to a render queue
func WithProjection(m mgl32.Mat4) RenderQueueBuilderOption {
	return func(q *renderQueue) {
		q.projection = m
	}
}
