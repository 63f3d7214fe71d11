package shader

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
)

// Builtin identifies a uniform the engine uploads itself on every draw call.
type Builtin int

const (
	// UniformModelViewProjection is projection * view * model.
	UniformModelViewProjection Builtin = iota
	// UniformModelView is view * model.
	UniformModelView
	// UniformModel is the model transform alone.
	UniformModel
	// UniformTexture is the sampler bound to texture unit 0.
	UniformTexture
	// UniformFogColor is the queue's fog color (vec3).
	UniformFogColor
	// UniformFogParams is (near, far, far-near).
	UniformFogParams
	// UniformViewport is (w, h, 1/w, 1/h) of the bound framebuffer.
	UniformViewport
	// UniformBoneMatrices is the bone palette uploaded by animation players.
	UniformBoneMatrices
	// UniformBoneCount is the number of valid palette entries, 0 for static geometry.
	UniformBoneCount
	// UniformParticleCount is the particle count of particle draw calls.
	UniformParticleCount
	// UniformLightPosition is the key light as a vec4: the direction towards the light with
	// w = 0, or the light position with w = 1.
	UniformLightPosition
	// UniformLightColor is the key light color premultiplied by its intensity.
	UniformLightColor
	// UniformLightRange is the attenuation distance of a positional key light.
	UniformLightRange
	// UniformAmbient is the queue's ambient color.
	UniformAmbient

	builtinCount
)

var builtinNames = [builtinCount]string{
	UniformModelViewProjection: "u_modelViewProjection",
	UniformModelView:           "u_modelView",
	UniformModel:               "u_model",
	UniformTexture:             "u_texture",
	UniformFogColor:            "u_fogColor",
	UniformFogParams:           "u_fogParams",
	UniformViewport:            "u_viewport",
	UniformBoneMatrices:        "u_boneMatrices",
	UniformBoneCount:           "u_boneCount",
	UniformParticleCount:       "u_particleCount",
	UniformLightPosition:       "u_lightPosition",
	UniformLightColor:          "u_lightColor",
	UniformLightRange:          "u_lightRange",
	UniformAmbient:             "u_ambient",
}

// Name returns the GLSL identifier of the builtin uniform.
func (b Builtin) Name() string {
	if b < 0 || b >= builtinCount {
		return ""
	}
	return builtinNames[b]
}

// Attrib identifies a vertex attribute the engine binds by convention.
type Attrib int

const (
	AttribPosition Attrib = iota
	AttribNormal
	AttribTexCoord
	AttribBoneIndices
	AttribBoneWeights

	attribCount
)

var attribNames = [attribCount]string{
	AttribPosition:    "a_position",
	AttribNormal:      "a_normal",
	AttribTexCoord:    "a_texCoord",
	AttribBoneIndices: "a_boneIndices",
	AttribBoneWeights: "a_boneWeights",
}

// Name returns the GLSL identifier of the attribute.
func (a Attrib) Name() string {
	if a < 0 || a >= attribCount {
		return ""
	}
	return attribNames[a]
}

// Program is a linked vertex/fragment pair together with its resolved uniform and
// attribute locations. Programs are created by a Registry and identified by a small integer id.
type Program struct {
	id     int
	key    string
	handle uint32

	builtins [builtinCount]int32
	attribs  [attribCount]int32

	// custom maps a registry-wide custom uniform slot to this program's location.
	custom map[int]int32
}

func newProgram(d gpu.Device, id int, key string, handle uint32) *Program {
	p := &Program{
		id:     id,
		key:    key,
		handle: handle,
		custom: make(map[int]int32),
	}
	for i := range p.builtins {
		p.builtins[i] = d.UniformLocation(handle, builtinNames[i])
	}
	for i := range p.attribs {
		p.attribs[i] = d.AttribLocation(handle, attribNames[i])
	}
	return p
}

// ID returns the registry id of the program.
func (p *Program) ID() int {
	return p.id
}

// Key returns the "{vertex}_{fragment}" lookup key of the program.
func (p *Program) Key() string {
	return p.key
}

// Handle returns the GPU program name.
func (p *Program) Handle() uint32 {
	return p.handle
}

// Location returns the location of a builtin uniform, or -1 if the program does not use it.
func (p *Program) Location(b Builtin) int32 {
	if b < 0 || b >= builtinCount {
		return -1
	}
	return p.builtins[b]
}

// AttribLocation returns the location of a conventional attribute, or -1 if unused.
func (p *Program) AttribLocation(a Attrib) int32 {
	if a < 0 || a >= attribCount {
		return -1
	}
	return p.attribs[a]
}

// CustomLocation returns the location registered for a custom uniform slot, or -1.
func (p *Program) CustomLocation(slot int) int32 {
	if loc, ok := p.custom[slot]; ok {
		return loc
	}
	return -1
}
