package mrf

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
)

const (
	// AllLayers is the layer filter matching every layer.
	AllLayers = "all_layers"
	// NoMuM is the MuM value of passes that declare none.
	NoMuM = "no_mum"
)

// ModelType selects what a pass draws.
type ModelType int

const (
	// ModelDefault draws every polygon map of the matching layers.
	ModelDefault ModelType = iota
	// ModelFullScreen draws one full-screen quad.
	ModelFullScreen
	// ModelBoundingBox draws the object's bounding box.
	ModelBoundingBox
	// ModelParticles draws ParticleCount particle quads.
	ModelParticles
)

// Pass is one parsed pass of a render settings document. Passes are immutable; accessors
// hand out copies.
type Pass struct {
	ID            string
	Target        target.TexType
	ClearMode     gpu.ClearMode
	ClearColor    common.Color
	ModelType     ModelType
	ParticleCount int
	Cull          gpu.CullMode
	TextureType   target.TexType
	Blend         gpu.BlendMode
	StraightAlpha bool
	DepthMask     bool
	DepthFunc     gpu.DepthFunc
	ColorMask     [4]bool

	VertexShader   string
	FragmentShader string

	// LayerName filters the layers a ModelDefault pass draws, AllLayers for every layer.
	LayerName string

	// MuM is carried for external tooling, NoMuM when absent.
	MuM string

	// Uniforms hold one declaration per name after priority resolution.
	Uniforms []Uniform
}

// ShaderKey returns the registry key of the pass's program.
func (p Pass) ShaderKey() string {
	return shader.Key(p.VertexShader, p.FragmentShader)
}

// MatchesLayer reports whether the pass draws the named layer.
func (p Pass) MatchesLayer(name string) bool {
	return p.LayerName == AllLayers || p.LayerName == name
}

// clone returns a copy sharing nothing mutable with p.
func (p Pass) clone() Pass {
	p.Uniforms = slices.Clone(p.Uniforms)
	for i := range p.Uniforms {
		p.Uniforms[i] = p.Uniforms[i].clone()
	}
	return p
}
