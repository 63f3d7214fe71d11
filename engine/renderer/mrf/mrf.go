// Package mrf resolves multi-pass render effects. An Mrf is loaded from a render settings
// document and, for each object it is applied to, expands its passes into draw calls: clears
// of offscreen targets, polygon map draws, full-screen quads, bounding boxes and particles.
// Offscreen targets already rendered into this frame by another effect are remapped to free
// ones so independent effects can share the small pool of shared targets.
package mrf

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/drawcall"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/target"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNotLoaded is returned by operations that need a loaded document.
	ErrNotLoaded = errors.New("mrf: not loaded")
	// ErrUniformsNotBound is returned when draw calls are requested before SetUniforms ran
	// on an Mrf loaded with deferred uniform binding.
	ErrUniformsNotBound = errors.New("mrf: uniforms not bound")
)

// State is the lifecycle stage of an Mrf.
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateUniformsDeferred
	StateReady
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateUniformsDeferred:
		return "uniforms deferred"
	case StateReady:
		return "ready"
	}
	return "uninitialized"
}

// Params are the per-object inputs of PrepareDrawCalls.
type Params struct {
	// Transform is the object's model transform.
	Transform mgl32.Mat4

	// Player animates polygon map draws; nil binds the null animation.
	Player animator.Player

	// Texture replaces the surface texture of passes sampling TexTypeDefault when >= 0.
	Texture int32
}

// DefaultParams returns identity transform, no player and no texture override.
func DefaultParams() Params {
	return Params{Transform: mgl32.Ident4(), Texture: -1}
}

// Mrf is a loaded multi-pass render effect. It is not safe for concurrent use; Load may run on
// any goroutine, everything else belongs on the GL thread.
type Mrf struct {
	shaders *shader.Registry
	pool    *drawcall.Pool
	targets *target.Pool

	state    State
	settings *RenderSettings

	// programs holds the program id of each pass, -1 when its shader is not registered.
	programs []int

	remap map[target.TexType]target.TexType
	out   []*drawcall.DrawCall
}

// NewMrf creates an uninitialized Mrf drawing with the given shared resources.
//
// Parameters:
//   - shaders: the program registry
//   - pool: the draw call pool
//   - targets: the shared render targets
//
// Returns:
//   - *Mrf: the effect
func NewMrf(shaders *shader.Registry, pool *drawcall.Pool, targets *target.Pool) *Mrf {
	if shaders == nil || pool == nil || targets == nil {
		panic("mrf: NewMrf requires a shader registry, a draw call pool and a target pool")
	}
	return &Mrf{
		shaders: shaders,
		pool:    pool,
		targets: targets,
		remap:   make(map[target.TexType]target.TexType),
	}
}

// Load parses doc. Unless skipUniformBinding is set the pass programs and uniform slots are
// resolved immediately, which issues GPU calls; with it set, SetUniforms must run on the GL
// thread before the first PrepareDrawCalls.
//
// Parameters:
//   - doc: the render settings document
//   - skipUniformBinding: defer program and uniform resolution
//
// Returns:
//   - error: the parse error; the Mrf keeps its previous state on failure
func (m *Mrf) Load(doc []byte, skipUniformBinding bool) error {
	s, err := ParseSettings(doc)
	if err != nil {
		return err
	}
	m.LoadSettings(s, skipUniformBinding)
	return nil
}

// LoadSettings installs already parsed settings, see Load.
//
// Parameters:
//   - s: the settings, owned by the Mrf from now on
//   - skipUniformBinding: defer program and uniform resolution
func (m *Mrf) LoadSettings(s *RenderSettings, skipUniformBinding bool) {
	m.settings = s
	m.programs = make([]int, len(s.Passes))
	for i := range m.programs {
		m.programs[i] = -1
	}
	m.state = StateLoaded
	if skipUniformBinding {
		m.state = StateUniformsDeferred
		return
	}
	m.bind()
}

// SetUniforms resolves pass programs and registers every declared uniform. It must run on the
// GL thread.
//
// Returns:
//   - error: ErrNotLoaded if no document was loaded
func (m *Mrf) SetUniforms() error {
	if m.settings == nil {
		return ErrNotLoaded
	}
	m.bind()
	return nil
}

func (m *Mrf) bind() {
	for i := range m.settings.Passes {
		p := &m.settings.Passes[i]
		m.programs[i] = m.shaders.Lookup(p.ShaderKey())
		for j := range p.Uniforms {
			p.Uniforms[j].Register(m.shaders, m.programs[i])
		}
	}
	m.state = StateReady
}

// State returns the lifecycle stage.
func (m *Mrf) State() State {
	return m.state
}

// ID returns the document id, or "" before loading.
func (m *Mrf) ID() string {
	if m.settings == nil {
		return ""
	}
	return m.settings.ID
}

// PassesNum returns the number of passes.
func (m *Mrf) PassesNum() int {
	if m.settings == nil {
		return 0
	}
	return len(m.settings.Passes)
}

// Pass returns a copy of pass i.
//
// Parameters:
//   - i: the pass index
//
// Returns:
//   - Pass: the pass
//   - bool: false when i is out of range
func (m *Mrf) Pass(i int) (Pass, bool) {
	if m.settings == nil || i < 0 || i >= len(m.settings.Passes) {
		return Pass{}, false
	}
	return m.settings.Passes[i].clone(), true
}

// Program returns the program id resolved for pass i, or -1.
func (m *Mrf) Program(i int) int {
	if i < 0 || i >= len(m.programs) {
		return -1
	}
	return m.programs[i]
}

// PrepareDrawCalls expands every pass for obj into draw calls acquired from the pool, in pass
// order. Offscreen targets another effect already rendered into this frame are remapped first,
// then every target drawn into is marked used. The returned slice is reused by the next call.
//
// Parameters:
//   - params: the per-object inputs
//   - obj: the object; may be nil for effects made only of full-screen passes
//
// Returns:
//   - []*drawcall.DrawCall: the draw calls, valid until the pool is reset
//   - error: ErrNotLoaded, ErrUniformsNotBound, target.ErrTargetsExhausted or
//     drawcall.ErrPoolExhausted; on pool exhaustion the calls emitted so far are returned fully
//     configured
func (m *Mrf) PrepareDrawCalls(params Params, obj model.Object) ([]*drawcall.DrawCall, error) {
	switch m.state {
	case StateUninitialized:
		return nil, ErrNotLoaded
	case StateUniformsDeferred:
		return nil, ErrUniformsNotBound
	}
	if err := m.resolveConflicts(); err != nil {
		return nil, err
	}

	m.out = m.out[:0]
	for i := range m.settings.Passes {
		if err := m.emit(i, params, obj); err != nil {
			return m.out, err
		}
	}
	return m.out, nil
}

// RegisterDrawCalls prepares the draw calls for obj and registers them into q.
//
// Parameters:
//   - q: the queue
//   - params: the per-object inputs
//   - obj: the object
//
// Returns:
//   - int: the number of registered draw calls
//   - error: any PrepareDrawCalls or registration error
func (m *Mrf) RegisterDrawCalls(q queue.RenderQueue, params Params, obj model.Object) (int, error) {
	calls, prepErr := m.PrepareDrawCalls(params, obj)
	for i, dc := range calls {
		if err := q.RegisterDrawCall(dc); err != nil {
			return i, err
		}
	}
	return len(calls), prepErr
}

// resolveConflicts rebuilds the remap table. A general target rendered into earlier this frame
// moves to the first free target at or after it that this effect does not draw into itself and
// that no other remap already took.
func (m *Mrf) resolveConflicts() error {
	clear(m.remap)

	var own [target.Count]bool
	for _, p := range m.settings.Passes {
		if p.Target.IsGeneral() {
			own[p.Target] = true
		}
	}
	var chosen [target.Count]bool
	taken := func(t target.TexType) bool {
		return own[t] || chosen[t]
	}

	for _, p := range m.settings.Passes {
		from := p.Target
		if !from.IsGeneral() || !m.targets.IsUsed(from) {
			continue
		}
		if _, done := m.remap[from]; done {
			continue
		}
		to, err := m.targets.FindFree(from, taken)
		if err != nil {
			return fmt.Errorf("mrf %q pass %q: %w", m.settings.ID, p.ID, err)
		}
		if to != from {
			m.remap[from] = to
			chosen[to] = true
		}
	}
	return nil
}

func (m *Mrf) resolve(t target.TexType) target.TexType {
	if to, ok := m.remap[t]; ok {
		return to
	}
	return t
}

// texture returns the draw call texture a pass samples. -1 lets polygon maps use their surface.
func (m *Mrf) texture(p *Pass, params Params) int32 {
	switch {
	case p.TextureType == target.TexTypeNone:
		return 0
	case p.TextureType == target.TexTypeDefault:
		return params.Texture
	}
	return m.targets.Texture(m.resolve(p.TextureType))
}

// emit appends the draw calls of pass i. When the pool runs out partway, the calls acquired so
// far are still configured and the target is still marked used, so every returned call is
// complete and the target cannot be aliased by another effect this frame.
func (m *Mrf) emit(i int, params Params, obj model.Object) error {
	p := &m.settings.Passes[i]
	resolved := m.resolve(p.Target)
	fb := m.targets.Framebuffer(resolved)

	if p.ClearMode != gpu.ClearNone {
		dc, err := m.pool.AcquireClear(p.ClearMode, p.ClearColor)
		if err != nil {
			return err
		}
		dc.Framebuffer = fb
		m.out = append(m.out, dc)
	}

	texture := m.texture(p, params)
	start := len(m.out)

	var err error
	switch p.ModelType {
	case ModelDefault:
		if obj == nil {
			break
		}
	layers:
		for _, l := range obj.Layers() {
			if !p.MatchesLayer(l.Name()) {
				continue
			}
			for _, pm := range l.PolygonMaps() {
				var dc *drawcall.DrawCall
				if dc, err = m.pool.AcquirePolygonMap(pm); err != nil {
					break layers
				}
				dc.Player = params.Player
				m.out = append(m.out, dc)
			}
		}
	case ModelFullScreen:
		var dc *drawcall.DrawCall
		if dc, err = m.pool.AcquireFullScreen(); err == nil {
			m.out = append(m.out, dc)
		}
	case ModelBoundingBox:
		if obj == nil {
			break
		}
		var dc *drawcall.DrawCall
		if dc, err = m.pool.AcquireBox(obj.BoundingBox()); err == nil {
			m.out = append(m.out, dc)
		}
	case ModelParticles:
		var dc *drawcall.DrawCall
		if dc, err = m.pool.AcquireParticles(p.ParticleCount); err == nil {
			if texture < 0 && obj != nil {
				texture = firstSurfaceTexture(p, obj)
			}
			m.out = append(m.out, dc)
		}
	}

	for _, dc := range m.out[start:] {
		m.configure(dc, i, p, params, fb, texture)
	}
	if p.Target != target.TexTypeDefault {
		m.targets.MarkUsed(resolved)
	}
	return err
}

func (m *Mrf) configure(dc *drawcall.DrawCall, i int, p *Pass, params Params, fb *gpu.Framebuffer, texture int32) {
	dc.Transform = params.Transform
	dc.Program = m.programs[i]
	dc.Texture = texture
	dc.Framebuffer = fb
	dc.StraightAlpha = p.StraightAlpha
	dc.Blend = p.Blend
	dc.Cull = p.Cull
	dc.DepthTest = p.DepthFunc != gpu.DepthDisabled
	if dc.DepthTest {
		dc.DepthFunc = p.DepthFunc
	}
	dc.DepthMask = p.DepthMask
	dc.ColorMask = p.ColorMask
	for _, u := range p.Uniforms {
		if u.Slot >= 0 {
			dc.SetUniform(u.Slot, u.Value())
		}
	}
}

// firstSurfaceTexture returns the surface texture of the first polygon map of the first layer
// the pass matches, or -1.
func firstSurfaceTexture(p *Pass, obj model.Object) int32 {
	for _, l := range obj.Layers() {
		if !p.MatchesLayer(l.Name()) {
			continue
		}
		if pms := l.PolygonMaps(); len(pms) > 0 && pms[0].Surface() != nil {
			return pms[0].Surface().Texture()
		}
		return -1
	}
	return -1
}
