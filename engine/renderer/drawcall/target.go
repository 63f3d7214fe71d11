package drawcall

import (
	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
)

// Target is what a draw call renders. Exactly one of PolygonMapTarget, BoxTarget,
// ParticleTarget, FullScreenTarget or ClearTarget.
type Target interface {
	isTarget()
}

// PolygonMapTarget draws a polygon map with its animation and buffers.
type PolygonMapTarget struct {
	PolygonMap model.PolygonMap
}

// BoxTarget draws the outline of an axis-aligned box.
type BoxTarget struct {
	Box common.BoundingBox
}

// ParticleTarget draws Count particle quads.
type ParticleTarget struct {
	Count int
}

// FullScreenTarget draws a quad covering the bound framebuffer.
type FullScreenTarget struct{}

// ClearTarget clears the bound framebuffer. Clears bind no program, texture or transform.
type ClearTarget struct {
	Mode  gpu.ClearMode
	Color common.Color
}

func (PolygonMapTarget) isTarget() {}
func (BoxTarget) isTarget()        {}
func (ParticleTarget) isTarget()   {}
func (FullScreenTarget) isTarget() {}
func (ClearTarget) isTarget()      {}
