package mrf

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
)

// ToolName is the exporter name every render settings document must carry.
const ToolName = "OxyMrfExporter"

var (
	// ErrToolName is returned for documents written by another tool.
	ErrToolName = errors.New("mrf: unsupported tool name")
	// ErrMalformedPass is returned when a pass is missing a field or has a wrong shape.
	ErrMalformedPass = errors.New("mrf: malformed pass")
	// ErrMalformedDocument is returned when the top-level object is invalid.
	ErrMalformedDocument = errors.New("mrf: malformed document")
)

// RenderSettings is a parsed render settings document.
type RenderSettings struct {
	ID            string
	ToolName      string
	Version       string
	LeftShiftBits int
	Passes        []Pass
}

type rawDocument struct {
	ID            *string   `json:"Id"`
	ToolName      *string   `json:"ToolName"`
	Version       *string   `json:"Version"`
	LeftShiftBits *int      `json:"LeftShiftBits"`
	Passes        []rawPass `json:"Passes"`
}

type rawPass struct {
	ID             *string      `json:"Id"`
	Target         *int         `json:"Target"`
	ClearMode      *int         `json:"ClearMode"`
	ClearColor     []int        `json:"ClearColor"`
	ModelType      *int         `json:"ModelType"`
	ParticleCount  *int         `json:"ParticleCount"`
	CullingMode    *int         `json:"CullingMode"`
	TextureType    *int         `json:"TextureType"`
	BlendMode      *int         `json:"BlendMode"`
	StraightAlpha  *int         `json:"StraightAlpha"`
	DepthMask      *int         `json:"DepthMask"`
	DepthFunc      *int         `json:"DepthFunc"`
	ColorMask      []int        `json:"ColorMask"`
	VertexShader   *string      `json:"VertexShader"`
	FragmentShader *string      `json:"FragmentShader"`
	LayerName      *string      `json:"LayerName"`
	MuM            *string      `json:"MuM"`
	Uniforms       []rawUniform `json:"Uniforms"`
}

type rawUniform struct {
	Name     *string `json:"Name"`
	Priority *int    `json:"Priority"`
	Values   []int   `json:"Values"`
}

// ParseSettings parses and validates a render settings document. Fixed-point values are
// decoded with the document's LeftShiftBits. Any malformed pass fails the whole document.
//
// Parameters:
//   - data: the JSON document
//
// Returns:
//   - *RenderSettings: the settings
//   - error: ErrToolName, ErrMalformedDocument or ErrMalformedPass, wrapped with detail
func ParseSettings(data []byte) (*RenderSettings, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if raw.ToolName == nil || *raw.ToolName != ToolName {
		return nil, fmt.Errorf("%w: %q", ErrToolName, common.Coalesce(deref(raw.ToolName), "<missing>"))
	}
	if raw.LeftShiftBits == nil || *raw.LeftShiftBits < 1 || *raw.LeftShiftBits > 30 {
		return nil, fmt.Errorf("%w: LeftShiftBits must be an integer in [1, 30]", ErrMalformedDocument)
	}
	if len(raw.Passes) == 0 {
		return nil, fmt.Errorf("%w: Passes must be a non-empty array", ErrMalformedDocument)
	}

	s := &RenderSettings{
		ID:            deref(raw.ID),
		ToolName:      *raw.ToolName,
		Version:       deref(raw.Version),
		LeftShiftBits: *raw.LeftShiftBits,
		Passes:        make([]Pass, 0, len(raw.Passes)),
	}
	for i, rp := range raw.Passes {
		p, err := rp.build(s.LeftShiftBits)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %s", ErrMalformedPass, i, err)
		}
		s.Passes = append(s.Passes, p)
	}
	return s, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (rp rawPass) build(shift int) (Pass, error) {
	required := []struct {
		name    string
		missing bool
	}{
		{"Id", rp.ID == nil},
		{"Target", rp.Target == nil},
		{"ClearMode", rp.ClearMode == nil},
		{"ModelType", rp.ModelType == nil},
		{"ParticleCount", rp.ParticleCount == nil},
		{"CullingMode", rp.CullingMode == nil},
		{"TextureType", rp.TextureType == nil},
		{"BlendMode", rp.BlendMode == nil},
		{"DepthMask", rp.DepthMask == nil},
		{"DepthFunc", rp.DepthFunc == nil},
		{"VertexShader", rp.VertexShader == nil},
		{"FragmentShader", rp.FragmentShader == nil},
	}
	for _, r := range required {
		if r.missing {
			return Pass{}, fmt.Errorf("missing %s", r.name)
		}
	}
	if len(rp.ClearColor) != 4 {
		return Pass{}, fmt.Errorf("ClearColor must have 4 values, got %d", len(rp.ClearColor))
	}
	if len(rp.ColorMask) != 4 {
		return Pass{}, fmt.Errorf("ColorMask must have 4 values, got %d", len(rp.ColorMask))
	}
	if len(rp.Uniforms) == 0 {
		return Pass{}, errors.New("Uniforms must be a non-empty array")
	}

	tgt := target.TexType(*rp.Target)
	if tgt != target.TexTypeDefault && !tgt.IsOffscreen() {
		return Pass{}, fmt.Errorf("Target %d out of range", *rp.Target)
	}
	tex := target.TexType(*rp.TextureType)
	if tex != target.TexTypeNone && tex != target.TexTypeDefault && !tex.IsOffscreen() {
		return Pass{}, fmt.Errorf("TextureType %d out of range", *rp.TextureType)
	}
	if *rp.ClearMode < int(gpu.ClearNone) || *rp.ClearMode > int(gpu.ClearColorAndDepth) {
		return Pass{}, fmt.Errorf("ClearMode %d out of range", *rp.ClearMode)
	}
	if *rp.ModelType < int(ModelDefault) || *rp.ModelType > int(ModelParticles) {
		return Pass{}, fmt.Errorf("ModelType %d out of range", *rp.ModelType)
	}
	if *rp.CullingMode < int(gpu.CullDefault) || *rp.CullingMode > int(gpu.CullNone) {
		return Pass{}, fmt.Errorf("CullingMode %d out of range", *rp.CullingMode)
	}
	if *rp.DepthFunc < int(gpu.DepthLEqual) || *rp.DepthFunc > int(gpu.DepthDisabled) {
		return Pass{}, fmt.Errorf("DepthFunc %d out of range", *rp.DepthFunc)
	}

	p := Pass{
		ID:             *rp.ID,
		Target:         tgt,
		ClearMode:      gpu.ClearMode(*rp.ClearMode),
		ModelType:      ModelType(*rp.ModelType),
		ParticleCount:  max(*rp.ParticleCount, 0),
		Cull:           gpu.CullMode(*rp.CullingMode),
		TextureType:    tex,
		Blend:          gpu.BlendMode(*rp.BlendMode),
		StraightAlpha:  deref(rp.StraightAlpha) != 0,
		DepthMask:      *rp.DepthMask != 0,
		DepthFunc:      gpu.DepthFunc(*rp.DepthFunc),
		VertexShader:   *rp.VertexShader,
		FragmentShader: *rp.FragmentShader,
		LayerName:      common.Coalesce(deref(rp.LayerName), AllLayers),
		MuM:            common.Coalesce(deref(rp.MuM), NoMuM),
	}
	for i, v := range rp.ClearColor {
		p.ClearColor[i] = common.DecodeFixed(v, shift)
	}
	for i, v := range rp.ColorMask {
		p.ColorMask[i] = v != 0
	}

	uniforms := make([]Uniform, 0, len(rp.Uniforms))
	for i, ru := range rp.Uniforms {
		if ru.Name == nil || *ru.Name == "" {
			return Pass{}, fmt.Errorf("uniform %d: missing Name", i)
		}
		if len(ru.Values) < 1 || len(ru.Values) > 4 {
			return Pass{}, fmt.Errorf("uniform %q: Values must have 1 to 4 entries, got %d", *ru.Name, len(ru.Values))
		}
		u := Uniform{
			Name:     *ru.Name,
			Priority: deref(ru.Priority),
			Encoded:  append([]int(nil), ru.Values...),
			Slot:     -1,
		}
		u.SetUp(shift)
		uniforms = append(uniforms, u)
	}
	p.Uniforms = resolvePriority(uniforms)
	return p, nil
}
