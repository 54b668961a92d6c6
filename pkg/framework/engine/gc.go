package engine

import (
	"github.com/audiograph/engine/pkg/framework/graph"
	"github.com/audiograph/engine/pkg/framework/queue"
)

// nodeHandle wraps a removed Dsp so the garbage queue's element type never
// has to expose graph internals beyond what disposal needs.
type nodeHandle struct {
	dsp *graph.Dsp
}

// GarbageCollector drains nodes the audio thread has retired via RemoveDsp
// and lets them go out of scope off the audio thread. Processor handles the
// Go GC equivalent of what a manual-memory host would call a deferred free:
// the node must outlive the block it was removed in (another goroutine
// might still hold a reference from a concurrent TopologicalSort snapshot),
// so disposal happens here, one poll tick later, rather than inline in
// RemoveDsp's command handler.
type GarbageCollector struct {
	queue  *queue.Queue[*nodeHandle]
	onFree func(*graph.Dsp)
}

// NewGarbageCollector creates a collector draining q. onFree, if non-nil, is
// called for every disposed node - tests and logging hook in here.
func NewGarbageCollector(q *queue.Queue[*nodeHandle], onFree func(*graph.Dsp)) *GarbageCollector {
	return &GarbageCollector{queue: q, onFree: onFree}
}

// Collect drains every pending retirement currently in the queue. Intended
// to be called periodically from a non-realtime goroutine.
func (g *GarbageCollector) Collect() int {
	n := 0
	for {
		handle, ok := g.queue.TryPop()
		if !ok {
			break
		}
		if g.onFree != nil {
			g.onFree(handle.dsp)
		}
		n++
	}
	return n
}
