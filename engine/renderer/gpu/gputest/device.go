// Package gputest provides a recording gpu.Device for tests. Every call is appended to a
// log and counted by method name, so deduplication can be asserted as call counts.
package gputest

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

// String formats the call as Name(args...).
func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

type locationKey struct {
	program uint32
	name    string
}

// Device is a gpu.Device that records instead of rendering.
type Device struct {
	mu sync.Mutex

	// DefaultFramebuffer is reported by FramebufferBinding until another framebuffer is bound.
	DefaultFramebuffer uint32
	// MissingUniforms lists uniform names UniformLocation reports as absent.
	MissingUniforms map[string]bool
	// MissingAttribs lists attribute names AttribLocation reports as absent.
	MissingAttribs map[string]bool
	// FailPrograms makes CreateProgram fail.
	FailPrograms bool

	calls       []Call
	counts      map[string]int
	nextHandle  uint32
	boundFB     uint32
	fbBound     bool
	locations   map[locationKey]int32
	attribs     map[locationKey]int32
	nextLoc     int32
	uniformVals map[int32][]float32
	uniformInts map[int32]int32
	matrices    map[int32][]mgl32.Mat4
}

var _ gpu.Device = &Device{}

// NewDevice creates an empty recording device.
//
// Returns:
//   - *Device: the device
func NewDevice() *Device {
	return &Device{
		DefaultFramebuffer: 0,
		MissingUniforms:    map[string]bool{},
		MissingAttribs:     map[string]bool{},
		counts:             map[string]int{},
		nextHandle:         1,
		locations:          map[locationKey]int32{},
		attribs:            map[locationKey]int32{},
		uniformVals:        map[int32][]float32{},
		uniformInts:        map[int32]int32{},
		matrices:           map[int32][]mgl32.Mat4{},
	}
}

func (d *Device) record(name string, args ...any) {
	d.calls = append(d.calls, Call{Name: name, Args: args})
	d.counts[name]++
}

func (d *Device) handle() uint32 {
	h := d.nextHandle
	d.nextHandle++
	return h
}

// Count returns how many times the named method was called.
func (d *Device) Count(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[name]
}

// Calls returns a copy of the call log.
func (d *Device) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// CallNames returns the method names of the call log, in order.
func (d *Device) CallNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.calls))
	for i, c := range d.calls {
		out[i] = c.Name
	}
	return out
}

// Total returns the number of recorded calls.
func (d *Device) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

// Reset clears the call log and counters but keeps allocated handles and locations.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
	d.counts = map[string]int{}
}

// UniformValue returns the last float values uploaded to the named uniform of program.
func (d *Device) UniformValue(program uint32, name string) []float32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, ok := d.locations[locationKey{program, name}]
	if !ok {
		return nil
	}
	return d.uniformVals[loc]
}

// UniformIntValue returns the last integer uploaded to the named uniform of program.
func (d *Device) UniformIntValue(program uint32, name string) (int32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, ok := d.locations[locationKey{program, name}]
	if !ok {
		return 0, false
	}
	v, ok := d.uniformInts[loc]
	return v, ok
}

// UniformMatrix returns the last matrices uploaded to the named uniform of program.
func (d *Device) UniformMatrix(program uint32, name string) []mgl32.Mat4 {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, ok := d.locations[locationKey{program, name}]
	if !ok {
		return nil
	}
	return d.matrices[loc]
}

// BoundFramebuffer returns the framebuffer name the device currently draws into.
func (d *Device) BoundFramebuffer() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.fbBound {
		return d.DefaultFramebuffer
	}
	return d.boundFB
}

func (d *Device) CreateBuffer() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.record("CreateBuffer", h)
	return h
}

func (d *Device) BufferData(target gpu.BufferTarget, handle uint32, data []byte, usage gpu.BufferUsage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BufferData", target, handle, len(data), usage)
}

func (d *Device) DeleteBuffer(handle uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DeleteBuffer", handle)
}

func (d *Device) VertexAttrib(slot int, vb *gpu.VertexBuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("VertexAttrib", slot, vb.Handle)
}

func (d *Device) EnableVertexAttrib(slot int, enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("EnableVertexAttrib", slot, enabled)
}

func (d *Device) BindIndexBuffer(handle uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BindIndexBuffer", handle)
}

func (d *Device) CreateTexture(width, height int) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.record("CreateTexture", width, height)
	return h
}

func (d *Device) BindTexture(handle uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BindTexture", handle)
}

func (d *Device) CreateFramebuffer() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.record("CreateFramebuffer", h)
	return h
}

func (d *Device) FramebufferTexture(texture uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("FramebufferTexture", texture)
}

func (d *Device) FramebufferDepth(width, height int) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.record("FramebufferDepth", width, height)
	return h
}

func (d *Device) BindFramebuffer(handle uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.boundFB = handle
	d.fbBound = true
	d.record("BindFramebuffer", handle)
}

func (d *Device) FramebufferBinding() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("FramebufferBinding")
	if !d.fbBound {
		return d.DefaultFramebuffer
	}
	return d.boundFB
}

func (d *Device) CreateProgram(vertexSource, fragmentSource string) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailPrograms {
		return 0, fmt.Errorf("gputest: program creation disabled")
	}
	h := d.handle()
	d.record("CreateProgram", h)
	return h, nil
}

func (d *Device) UseProgram(handle uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UseProgram", handle)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.MissingUniforms[name] {
		return -1
	}
	key := locationKey{program, name}
	if loc, ok := d.locations[key]; ok {
		return loc
	}
	loc := d.nextLoc
	d.nextLoc++
	d.locations[key] = loc
	return loc
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.MissingAttribs[name] {
		return -1
	}
	key := locationKey{program, name}
	if loc, ok := d.attribs[key]; ok {
		return loc
	}
	loc := int32(len(d.attribs) % 8)
	d.attribs[key] = loc
	return loc
}

func (d *Device) UniformFloats(location int32, v []float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UniformFloats", location, append([]float32(nil), v...))
	if location >= 0 {
		d.uniformVals[location] = append([]float32(nil), v...)
	}
}

func (d *Device) UniformInt(location int32, v int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UniformInt", location, v)
	if location >= 0 {
		d.uniformInts[location] = v
	}
}

func (d *Device) UniformMatrices(location int32, m []mgl32.Mat4) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("UniformMatrices", location, len(m))
	if location >= 0 {
		d.matrices[location] = append([]mgl32.Mat4(nil), m...)
	}
}

func (d *Device) SetBlendEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("SetBlendEnabled", enabled)
}

func (d *Device) BlendFunc(src, dst gpu.BlendFactor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BlendFunc", src, dst)
}

func (d *Device) BlendEquation(eq gpu.BlendEquation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("BlendEquation", eq)
}

func (d *Device) SetCullMode(mode gpu.CullMode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("SetCullMode", mode)
}

func (d *Device) SetDepthTestEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("SetDepthTestEnabled", enabled)
}

func (d *Device) DepthFunc(fn gpu.DepthFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DepthFunc", fn)
}

func (d *Device) DepthMask(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DepthMask", enabled)
}

func (d *Device) ColorMask(r, g, b, a bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("ColorMask", r, g, b, a)
}

func (d *Device) Viewport(r common.Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Viewport", r)
}

func (d *Device) Clear(mode gpu.ClearMode, color common.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("Clear", mode, color)
}

func (d *Device) DrawArrays(prim gpu.Primitive, first, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DrawArrays", prim, first, count)
}

func (d *Device) DrawElements(prim gpu.Primitive, count int, typ gpu.DataType, offset int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("DrawElements", prim, count, typ, offset)
}
