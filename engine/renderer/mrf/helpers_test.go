package mrf

import (
	"github.com/Carmen-Shannon/oxy-gles/engine/renderer/queue"
)

type recordingPlayer struct {
	binds int
}

func (p *recordingPlayer) Bind(q queue.RenderQueue) {
	p.binds++
}

func newQueue(f *fixture) queue.RenderQueue {
	return queue.NewRenderQueue(f.binder)
}
