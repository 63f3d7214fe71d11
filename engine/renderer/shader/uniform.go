package shader

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-gles/common"
)

// RelativeSuffix marks a custom uniform whose values are given in pixels and are divided
// by the bound framebuffer's viewport size when uploaded.
const RelativeSuffix = "_px"

// UniformValue is the value of a custom uniform carried by a draw call.
type UniformValue struct {
	// Values holds up to four components; only the first Count are uploaded.
	Values [4]float32
	// Count is the number of components, 1 to 4.
	Count int
	// ViewportRelative divides the components by (w, h, w, h) of the bound viewport.
	ViewportRelative bool
}

// NewUniformValue builds a value from decoded components. Names ending in RelativeSuffix
// produce a viewport relative value.
//
// Parameters:
//   - name: the uniform name
//   - values: one to four components; extra components are dropped
//
// Returns:
//   - UniformValue: the value
func NewUniformValue(name string, values []float32) UniformValue {
	var u UniformValue
	u.Count = copy(u.Values[:], values)
	u.ViewportRelative = strings.HasSuffix(name, RelativeSuffix)
	return u
}

// Resolve returns the components to upload for the given viewport.
//
// Parameters:
//   - viewport: the viewport of the currently bound framebuffer
//
// Returns:
//   - []float32: Count components
func (u UniformValue) Resolve(viewport common.Rect) []float32 {
	out := make([]float32, u.Count)
	copy(out, u.Values[:u.Count])
	if !u.ViewportRelative || viewport.Empty() {
		return out
	}
	size := [4]float32{float32(viewport.Width), float32(viewport.Height), float32(viewport.Width), float32(viewport.Height)}
	for i := range out {
		out[i] /= size[i]
	}
	return out
}
