// pre_processor.go implements the GLSL ES shader pre-processor. It scans shader source for
// "#pragma oxy include <chunk>" lines, replaces them with registered source chunks, and makes
// sure fragment shaders declare a default float precision as GLSL ES 1.00 requires.
package shader

import (
	"fmt"
	"strings"
)

// Stage identifies the pipeline stage a source is compiled for.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

const includePragma = "#pragma oxy include"

// defaultPrecision is injected into fragment shaders that declare none.
const defaultPrecision = "precision mediump float;"

// ChunkFog declares the fog uniforms and a helper applying linear fog to a color.
const ChunkFog = `uniform vec3 u_fogColor;
uniform vec3 u_fogParams;
vec3 oxyApplyFog(vec3 color, float depth) {
	float f = clamp((depth - u_fogParams.x) / max(u_fogParams.z, 0.0001), 0.0, 1.0);
	return mix(color, u_fogColor, f);
}`

// ChunkSkinning declares the bone palette uniforms and a helper skinning a position.
const ChunkSkinning = `#define OXY_MAX_BONES 32
uniform mat4 u_boneMatrices[OXY_MAX_BONES];
uniform int u_boneCount;
attribute vec4 a_boneIndices;
attribute vec4 a_boneWeights;
vec4 oxySkin(vec4 position) {
	if (u_boneCount == 0) {
		return position;
	}
	mat4 m = u_boneMatrices[int(a_boneIndices.x)] * a_boneWeights.x
		+ u_boneMatrices[int(a_boneIndices.y)] * a_boneWeights.y
		+ u_boneMatrices[int(a_boneIndices.z)] * a_boneWeights.z
		+ u_boneMatrices[int(a_boneIndices.w)] * a_boneWeights.w;
	return m * position;
}`

// ChunkLighting declares the key light uniforms and a helper returning the diffuse light
// reaching a surface, ambient included.
const ChunkLighting = `uniform vec4 u_lightPosition;
uniform vec3 u_lightColor;
uniform float u_lightRange;
uniform vec3 u_ambient;
vec3 oxyLight(vec3 worldPos, vec3 normal) {
	vec3 l = u_lightPosition.xyz - worldPos * u_lightPosition.w;
	float atten = 1.0;
	if (u_lightPosition.w > 0.0) {
		atten = clamp(1.0 - length(l) / max(u_lightRange, 0.0001), 0.0, 1.0);
	}
	float ndl = max(dot(normalize(normal), normalize(l)), 0.0);
	return u_ambient + u_lightColor * ndl * atten;
}`

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// chunks maps include names to the GLSL source that replaces the include line.
	chunks map[string]string
}

// PreProcessor expands include pragmas in GLSL ES sources.
type PreProcessor interface {
	// Process expands every include pragma of source. For StageFragment a default precision
	// statement is prepended when the source has none.
	//
	// Parameters:
	//   - source: the raw GLSL source
	//   - stage: the stage the source is compiled for
	//
	// Returns:
	//   - string: the processed source
	//   - error: an error if an include names an unknown chunk or is malformed
	Process(source string, stage Stage) (string, error)

	// AddChunk registers or replaces a named chunk.
	//
	// Parameters:
	//   - name: the include name
	//   - source: the GLSL source of the chunk
	AddChunk(name, source string)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the fog, lighting and skinning chunks registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		chunks: map[string]string{
			"fog":      ChunkFog,
			"lighting": ChunkLighting,
			"skinning": ChunkSkinning,
		},
	}
}

func (p *preProcessor) AddChunk(name, source string) {
	p.chunks[name] = source
}

func (p *preProcessor) Process(source string, stage Stage) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines)+1)
	hasPrecision := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "precision ") {
			hasPrecision = true
		}
		rest, ok := strings.CutPrefix(trimmed, includePragma)
		if !ok {
			out = append(out, line)
			continue
		}
		name := strings.TrimSpace(rest)
		name = strings.TrimSuffix(strings.TrimPrefix(name, "<"), ">")
		if name == "" {
			return "", fmt.Errorf("line %d: include pragma without a chunk name", i+1)
		}
		chunk, ok := p.chunks[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include chunk %q", i+1, name)
		}
		out = append(out, chunk)
	}

	if stage == StageFragment && !hasPrecision {
		out = insertPrecision(out)
	}
	return strings.Join(out, "\n"), nil
}

// insertPrecision places the default precision after a leading #version line, if any.
func insertPrecision(lines []string) []string {
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "#version") {
		return append([]string{lines[0], defaultPrecision}, lines[1:]...)
	}
	return append([]string{defaultPrecision}, lines...)
}
