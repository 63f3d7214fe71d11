package mrf

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
)

// Uniform is a custom uniform declared by a pass.
type Uniform struct {
	// Name is the GLSL uniform name. A "_px" suffix makes the value viewport relative.
	Name string

	// Priority decides between declarations of the same name; the highest wins.
	Priority int

	// Encoded holds the fixed-point values as written in the document.
	Encoded []int

	// Values holds the decoded values once SetUp has run.
	Values []float32

	// Slot is the registry slot once Register has run, -1 before.
	Slot int
}

// SetUp decodes Encoded into Values.
//
// Parameters:
//   - shiftBits: the document's LeftShiftBits
func (u *Uniform) SetUp(shiftBits int) {
	u.Values = make([]float32, len(u.Encoded))
	for i, v := range u.Encoded {
		u.Values[i] = common.DecodeFixed(v, shiftBits)
	}
}

// Register resolves the uniform's slot and its location in programID. An unknown program still
// yields a slot; the value is then uploaded nowhere.
//
// Parameters:
//   - reg: the shader registry
//   - programID: the program the pass draws with, possibly -1
func (u *Uniform) Register(reg *shader.Registry, programID int) {
	// an unknown program is tolerated like the GPU tolerates location -1
	u.Slot, _ = reg.RegisterCustomUniform(programID, u.Name)
}

// Value returns the value uploaded by draw calls.
//
// Returns:
//   - shader.UniformValue: the value
func (u Uniform) Value() shader.UniformValue {
	return shader.NewUniformValue(u.Name, u.Values)
}

func (u Uniform) clone() Uniform {
	u.Encoded = slices.Clone(u.Encoded)
	u.Values = slices.Clone(u.Values)
	return u
}

// resolvePriority keeps one declaration per name: the highest priority, the later one on ties.
// Names keep the position of their first declaration.
func resolvePriority(uniforms []Uniform) []Uniform {
	index := make(map[string]int, len(uniforms))
	out := make([]Uniform, 0, len(uniforms))
	for _, u := range uniforms {
		i, seen := index[u.Name]
		if !seen {
			index[u.Name] = len(out)
			out = append(out, u)
			continue
		}
		if u.Priority >= out[i].Priority {
			out[i] = u
		}
	}
	return out
}
