package engine

import (
	"testing"

	"github.com/audiograph/engine/pkg/framework/graph"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/framework/queue"
)

func TestGarbageCollectorCallsOnFreeForEachRetiredNode(t *testing.T) {
	q := queue.New[*nodeHandle](8)
	var freed []graph.Dsp

	gc := NewGarbageCollector(q, func(d *graph.Dsp) { freed = append(freed, *d) })

	a := graph.NewDsp(passthroughSum{}, param.NewRegistry())
	b := graph.NewDsp(passthroughSum{}, param.NewRegistry())
	q.TryPush(&nodeHandle{dsp: a})
	q.TryPush(&nodeHandle{dsp: b})

	n := gc.Collect()
	if n != 2 {
		t.Fatalf("Collect() = %d, want 2", n)
	}
	if len(freed) != 2 {
		t.Fatalf("expected onFree called twice, got %d", len(freed))
	}
}

func TestGarbageCollectorIsIdempotentWhenEmpty(t *testing.T) {
	q := queue.New[*nodeHandle](8)
	gc := NewGarbageCollector(q, nil)

	if n := gc.Collect(); n != 0 {
		t.Fatalf("Collect() on an empty queue = %d, want 0", n)
	}
}
