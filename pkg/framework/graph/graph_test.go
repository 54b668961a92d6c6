package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audiograph/engine/pkg/framework/buffer"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/timestamp"
)

// passthrough is a minimal Processor used to build graph fixtures without
// pulling in a real DSP node.
type passthrough struct{}

func (passthrough) ProcessAudio(input, output buffer.AudioBuffer, startTime timestamp.Timestamp, parameters *param.Registry) {
}

func newTestDsp() *Dsp {
	return NewDsp(passthrough{}, param.NewRegistry())
}

func TestTopologicalSortOrdersLinearChain(t *testing.T) {
	g := New()
	a, b, c := newTestDsp(), newTestDsp(), newTestDsp()
	g.AddNode(a)
	g.AddNode(b)
	g.AddNode(c)
	g.AddConnection(a.Id, b.Id)
	g.AddConnection(b.Id, c.Id)

	order := g.TopologicalSort()
	require.Len(t, order, 3)

	pos := make(map[int]int)
	for i, d := range order {
		switch d.Id {
		case a.Id:
			pos[0] = i
		case b.Id:
			pos[1] = i
		case c.Id:
			pos[2] = i
		}
	}
	assert.True(t, pos[0] < pos[1] && pos[1] < pos[2], "expected order a, b, c; got positions %v", pos)
}

func TestTopologicalSortDropsCycleNode(t *testing.T) {
	g := New()
	a, b, c := newTestDsp(), newTestDsp(), newTestDsp()
	g.AddNode(a)
	g.AddNode(b)
	g.AddNode(c)
	g.AddConnection(a.Id, b.Id)
	g.AddConnection(b.Id, c.Id)
	g.AddConnection(c.Id, b.Id) // closes a cycle b -> c -> b

	order := g.TopologicalSort()
	require.Len(t, order, 1, "expected only the acyclic root to survive")
	assert.Equal(t, a.Id, order[0].Id)
}

func TestTopologicalSortCacheInvalidatedByMutation(t *testing.T) {
	g := New()
	a := newTestDsp()
	g.AddNode(a)

	first := g.TopologicalSort()
	require.Len(t, first, 1)

	b := newTestDsp()
	g.AddNode(b)

	second := g.TopologicalSort()
	assert.Len(t, second, 2, "expected cache to refresh after AddNode")
}

func TestDuplicateConnectionsBothAppearUpstream(t *testing.T) {
	g := New()
	a, b := newTestDsp(), newTestDsp()
	g.AddNode(a)
	g.AddNode(b)
	g.AddConnection(a.Id, b.Id)
	g.AddConnection(a.Id, b.Id)

	assert.Len(t, g.Upstream(b.Id), 2, "expected duplicate connection to appear twice")
}

func TestRemoveNodeDropsItsConnections(t *testing.T) {
	g := New()
	a, b := newTestDsp(), newTestDsp()
	g.AddNode(a)
	g.AddNode(b)
	g.AddConnection(a.Id, b.Id)

	g.RemoveNode(a.Id)

	assert.Empty(t, g.Upstream(b.Id), "expected b's upstream connections to be gone once a was removed")
	_, ok := g.Node(a.Id)
	assert.False(t, ok, "expected a to be gone from the graph")
}

func TestConnectToOutputReplacesPrevious(t *testing.T) {
	g := New()
	a, b := newTestDsp(), newTestDsp()
	g.AddNode(a)
	g.AddNode(b)

	g.ConnectToOutput(a.Id)
	g.ConnectToOutput(b.Id)

	out, ok := g.OutputNode()
	require.True(t, ok)
	assert.Equal(t, b.Id, out, "expected output node to be b after the second ConnectToOutput call")
}
