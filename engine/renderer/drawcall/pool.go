package drawcall

import (
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-gles/common"
	"github.com/Carmen-Shannon/oxy-gles/engine/model"
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/gpu"
)

// DefaultCapacity is the number of draw calls a pool holds per frame.
const DefaultCapacity = 4096

// ErrPoolExhausted is returned when a frame acquires more draw calls than the pool holds.
var ErrPoolExhausted = errors.New("drawcall: pool exhausted")

// Pool is a frame-scoped bump allocator of draw calls. Acquired records stay valid until
// Reset, which must run exactly once per frame after every queue has executed.
type Pool struct {
	records []DrawCall
	next    int
	warned  bool
}

// NewPool creates a pool holding capacity draw calls. Non-positive capacities use DefaultCapacity.
//
// Parameters:
//   - capacity: the number of records
//
// Returns:
//   - *Pool: the pool
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{records: make([]DrawCall, capacity)}
}

func (p *Pool) acquire() (*DrawCall, error) {
	if p.next >= len(p.records) {
		if !p.warned {
			log.Printf("[DrawCallPool] capacity %d exhausted, further draw calls this frame are dropped", len(p.records))
			p.warned = true
		}
		return nil, fmt.Errorf("%w: capacity %d", ErrPoolExhausted, len(p.records))
	}
	dc := &p.records[p.next]
	p.next++
	return dc, nil
}

// AcquirePolygonMap returns a reset draw call targeting pm.
//
// Parameters:
//   - pm: the polygon map
//
// Returns:
//   - *DrawCall: the record
//   - error: ErrPoolExhausted past capacity
func (p *Pool) AcquirePolygonMap(pm model.PolygonMap) (*DrawCall, error) {
	dc, err := p.acquire()
	if err != nil {
		return nil, err
	}
	dc.SetPolygonMap(pm)
	return dc, nil
}

// AcquireBox returns a reset draw call targeting a box outline.
//
// Parameters:
//   - box: the box
//
// Returns:
//   - *DrawCall: the record
//   - error: ErrPoolExhausted past capacity
func (p *Pool) AcquireBox(box common.BoundingBox) (*DrawCall, error) {
	dc, err := p.acquire()
	if err != nil {
		return nil, err
	}
	dc.SetBox(box)
	return dc, nil
}

// AcquireParticles returns a reset draw call targeting count particles.
//
// Parameters:
//   - count: the number of particles
//
// Returns:
//   - *DrawCall: the record
//   - error: ErrPoolExhausted past capacity
func (p *Pool) AcquireParticles(count int) (*DrawCall, error) {
	dc, err := p.acquire()
	if err != nil {
		return nil, err
	}
	dc.SetParticles(count)
	return dc, nil
}

// AcquireFullScreen returns a reset draw call targeting a full-screen quad.
//
// Returns:
//   - *DrawCall: the record
//   - error: ErrPoolExhausted past capacity
func (p *Pool) AcquireFullScreen() (*DrawCall, error) {
	dc, err := p.acquire()
	if err != nil {
		return nil, err
	}
	dc.SetFullScreen()
	return dc, nil
}

// AcquireClear returns a reset draw call clearing the bound framebuffer.
//
// Parameters:
//   - mode: which buffers to clear
//   - color: the clear color
//
// Returns:
//   - *DrawCall: the record
//   - error: ErrPoolExhausted past capacity
func (p *Pool) AcquireClear(mode gpu.ClearMode, color common.Color) (*DrawCall, error) {
	dc, err := p.acquire()
	if err != nil {
		return nil, err
	}
	dc.SetClear(mode, color)
	return dc, nil
}

// Reset invalidates every record acquired this frame.
func (p *Pool) Reset() {
	p.next = 0
	p.warned = false
}

// Next returns the index the next acquisition will use.
func (p *Pool) Next() int {
	return p.next
}

// Cap returns the capacity of the pool.
func (p *Pool) Cap() int {
	return len(p.records)
}
