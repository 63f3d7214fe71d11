// Package target owns the shared offscreen render targets: 15 general framebuffers at a
// fraction of the screen resolution and 4 post-process framebuffers, together with the
// per-frame flags recording which of them have been rendered into.
package target

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
)

// TexType identifies a render surface: the default screen, a general FBO or a post FBO.
// Used as a pass target it names where the pass draws; used as a texture selection it names
// which target's color texture the pass samples.
type TexType int

const (
	// TexTypeNone selects no texture.
	TexTypeNone TexType = -1
	// TexTypeDefault is the screen as a target and the object's own surface as a texture.
	TexTypeDefault TexType = 0

	TexTypeFBO1 TexType = iota - 1
	TexTypeFBO2
	TexTypeFBO3
	TexTypeFBO4
	TexTypeFBO5
	TexTypeFBO6
	TexTypeFBO7
	TexTypeFBO8
	TexTypeFBO9
	TexTypeFBO10
	TexTypeFBO11
	TexTypeFBO12
	TexTypeFBO13
	TexTypeFBO14
	TexTypeFBO15
	TexTypePost1
	TexTypePost2
	TexTypePost3
	TexTypePost4
)

const (
	// GeneralCount is the number of general offscreen targets.
	GeneralCount = 15
	// PostCount is the number of post-process targets.
	PostCount = 4
	// Count is the length of the slice returned by Pool.Used, indexable by TexType.
	Count = int(TexTypePost4) + 1
)

// IsGeneral reports whether t is one of the 15 general targets.
func (t TexType) IsGeneral() bool {
	return t >= TexTypeFBO1 && t <= TexTypeFBO15
}

// IsPost reports whether t is one of the 4 post-process targets.
func (t TexType) IsPost() bool {
	return t >= TexTypePost1 && t <= TexTypePost4
}

// IsOffscreen reports whether t is a general or post-process target.
func (t TexType) IsOffscreen() bool {
	return t.IsGeneral() || t.IsPost()
}

// ErrTargetsExhausted is returned by FindFree under PolicyFail when no general target is free.
var ErrTargetsExhausted = errors.New("target: no free render target")

// ExhaustionPolicy decides what FindFree does when every candidate target is taken.
type ExhaustionPolicy int

const (
	// PolicyReuse falls back to the conflicting target and logs a warning.
	PolicyReuse ExhaustionPolicy = iota
	// PolicyFail returns ErrTargetsExhausted.
	PolicyFail
)

// ParseExhaustionPolicy parses "reuse" or "fail". The empty string is PolicyReuse.
//
// Parameters:
//   - s: the policy name
//
// Returns:
//   - ExhaustionPolicy: the policy
//   - error: an error for unknown names
func ParseExhaustionPolicy(s string) (ExhaustionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reuse":
		return PolicyReuse, nil
	case "fail":
		return PolicyFail, nil
	}
	return PolicyReuse, fmt.Errorf("target: unknown exhaustion policy %q", s)
}

// String returns the configuration name of the policy.
func (p ExhaustionPolicy) String() string {
	if p == PolicyFail {
		return "fail"
	}
	return "reuse"
}

// Pool owns the shared render targets. It is not safe for concurrent use.
type Pool struct {
	binder binder.Binder

	width, height                      int
	generalDivisor                     int
	postSmallDivisor, postLargeDivisor int
	policy                             ExhaustionPolicy

	targets [Count]*gpu.Framebuffer
	used    [Count]bool
}

// NewPool allocates every shared target for a screen of the given size. It must run on the
// GL thread. The screen framebuffer is bound again when it returns.
//
// Parameters:
//   - b: the binder
//   - width: the screen width in pixels
//   - height: the screen height in pixels
//   - options: functional options to configure the pool
//
// Returns:
//   - *Pool: the pool
func NewPool(b binder.Binder, width, height int, options ...PoolBuilderOption) *Pool {
	if b == nil {
		panic("target: NewPool requires a non-nil binder.Binder")
	}
	p := &Pool{
		binder:           b,
		width:            width,
		height:           height,
		generalDivisor:   4,
		postSmallDivisor: 8,
		postLargeDivisor: 2,
	}
	for _, opt := range options {
		opt(p)
	}
	p.generalDivisor = max(p.generalDivisor, 1)
	p.postSmallDivisor = max(p.postSmallDivisor, 1)
	p.postLargeDivisor = max(p.postLargeDivisor, 1)

	for t := TexTypeFBO1; t <= TexTypeFBO15; t++ {
		p.targets[t] = p.allocate(p.generalDivisor, true)
	}
	p.targets[TexTypePost1] = p.allocate(p.postSmallDivisor, true)
	p.targets[TexTypePost2] = p.allocate(p.postSmallDivisor, false)
	p.targets[TexTypePost3] = p.allocate(p.postLargeDivisor, true)
	p.targets[TexTypePost4] = p.allocate(p.postLargeDivisor, false)
	b.BindFramebuffer(nil)
	return p
}

func (p *Pool) allocate(divisor int, depth bool) *gpu.Framebuffer {
	w, h := max(p.width/divisor, 1), max(p.height/divisor, 1)
	fb := p.CreateFBO(w, h)
	p.SetFBOTexture(fb, p.NewTexture(w, h), depth)
	return fb
}

// CreateFBO allocates a framebuffer name with no attachments.
//
// Parameters:
//   - width: the viewport width
//   - height: the viewport height
//
// Returns:
//   - *gpu.Framebuffer: the framebuffer, with Texture -1
func (p *Pool) CreateFBO(width, height int) *gpu.Framebuffer {
	return &gpu.Framebuffer{
		Handle:   p.binder.Device().CreateFramebuffer(),
		Texture:  -1,
		Viewport: common.Rect{Width: int32(width), Height: int32(height)},
	}
}

// NewTexture creates a color texture. The binder's texture cache is reset first because
// creation binds the texture behind its back.
//
// Parameters:
//   - width: the texture width
//   - height: the texture height
//
// Returns:
//   - uint32: the texture name
func (p *Pool) NewTexture(width, height int) uint32 {
	p.binder.ResetTextureCacheOnly()
	return p.binder.Device().CreateTexture(width, height)
}

// SetFBOTexture attaches texture as fb's color buffer and optionally creates a depth buffer
// the size of fb's viewport. fb is left bound.
//
// Parameters:
//   - fb: the framebuffer
//   - texture: the texture name
//   - createDepth: whether to attach a depth renderbuffer
func (p *Pool) SetFBOTexture(fb *gpu.Framebuffer, texture uint32, createDepth bool) {
	p.binder.BindFramebuffer(fb)
	d := p.binder.Device()
	d.FramebufferTexture(texture)
	fb.Texture = int32(texture)
	if createDepth && fb.Depth == 0 {
		fb.Depth = d.FramebufferDepth(int(fb.Viewport.Width), int(fb.Viewport.Height))
	}
}

// Framebuffer returns the target t, or nil for the default screen and invalid values.
//
// Parameters:
//   - t: the target
//
// Returns:
//   - *gpu.Framebuffer: the framebuffer or nil
func (p *Pool) Framebuffer(t TexType) *gpu.Framebuffer {
	if !t.IsOffscreen() {
		return nil
	}
	return p.targets[t]
}

// Texture returns the color texture of target t, or -1.
//
// Parameters:
//   - t: the target
//
// Returns:
//   - int32: the texture name or -1
func (p *Pool) Texture(t TexType) int32 {
	fb := p.Framebuffer(t)
	if fb == nil {
		return -1
	}
	return fb.Texture
}

// MarkUsed flags t as rendered into this frame. Non-offscreen values are ignored.
func (p *Pool) MarkUsed(t TexType) {
	if t.IsOffscreen() {
		p.used[t] = true
	}
}

// IsUsed reports whether t was rendered into this frame.
func (p *Pool) IsUsed(t TexType) bool {
	return t.IsOffscreen() && p.used[t]
}

// Used returns a copy of the per-frame flags, indexable by TexType.
//
// Returns:
//   - []bool: Count flags
func (p *Pool) Used() []bool {
	out := make([]bool, Count)
	copy(out, p.used[:])
	return out
}

// ResetUsed clears every per-frame flag. It runs once per frame from the renderer's flush.
func (p *Pool) ResetUsed() {
	p.used = [Count]bool{}
}

// Policy returns the exhaustion policy.
func (p *Pool) Policy() ExhaustionPolicy {
	return p.policy
}

// FindFree returns the first general target at or after from that is neither used this frame
// nor rejected by taken. When none is left the pool's policy decides: PolicyReuse returns from
// itself, PolicyFail returns ErrTargetsExhausted.
//
// Parameters:
//   - from: the general target to start at
//   - taken: reports targets that must be skipped in addition to used ones; may be nil
//
// Returns:
//   - TexType: the free target, or from
//   - error: ErrTargetsExhausted under PolicyFail
func (p *Pool) FindFree(from TexType, taken func(TexType) bool) (TexType, error) {
	if !from.IsGeneral() {
		return from, nil
	}
	for t := from; t <= TexTypeFBO15; t++ {
		if p.used[t] || (taken != nil && taken(t)) {
			continue
		}
		return t, nil
	}
	if p.policy == PolicyFail {
		return from, fmt.Errorf("%w: FBO%d and every later target are taken", ErrTargetsExhausted, from)
	}
	log.Printf("[Targets] no free target at or after FBO%d, reusing it", from)
	return from, nil
}
