// Package engine schedules the processing graph block by block and exposes
// the command/notification boundary the control thread uses to drive it.
package engine

import (
	"github.com/audiograph/engine/pkg/framework/buffer"
	"github.com/audiograph/engine/pkg/framework/debug"
	"github.com/audiograph/engine/pkg/framework/graph"
	"github.com/audiograph/engine/pkg/timestamp"
)

// DspGraph renders one block of the processing graph into an external
// output buffer. It owns the scratch buffer pool every node's input and
// output is drawn from; no node ever sees or keeps its own buffer across
// blocks.
type DspGraph struct {
	graph *graph.Graph
	pool  *buffer.Pool[graph.Endpoint]
}

// NewDspGraph creates a scheduler for g, with a scratch pool sized for up
// to maxNodes nodes rendering maxFrames x maxChannels blocks.
func NewDspGraph(g *graph.Graph, maxNodes, maxFrames, maxChannels int, sampleRate float64) *DspGraph {
	return &DspGraph{
		graph: g,
		// Every node needs at most one input scratch buffer and one output
		// buffer live at once; size generously so legitimate fan-out never
		// starves the pool.
		pool: buffer.New[graph.Endpoint](maxNodes*2+2, maxFrames, maxChannels, sampleRate),
	}
}

// Graph returns the underlying topology, for command handlers that mutate
// it.
func (d *DspGraph) Graph() *graph.Graph { return d.graph }

// Process renders one block: every node in topological order is given the
// sum of its upstream outputs as input, and the node currently connected to
// the external output is mixed into external. startTime is the timestamp of
// external's first frame.
func (d *DspGraph) Process(external buffer.AudioBuffer, startTime timestamp.Timestamp) {
	numFrames := min(external.NumFrames(), d.pool.MaxFrames())
	numChannels := min(external.NumChannels(), d.pool.MaxChannels())

	order := d.graph.TopologicalSort()

	for _, node := range order {
		upstream := d.graph.Upstream(node.Id)

		var input buffer.AudioBuffer
		var inBuf *buffer.Owned
		if len(upstream) > 0 {
			taken, ok := d.pool.TakeUnassigned()
			debug.Assert(ok, "buffer pool exhausted allocating a node's input buffer")
			if ok {
				inBuf = taken
				for _, up := range upstream {
					upBuf, ok := d.pool.PeekAssigned(graph.Endpoint{Node: up, Kind: graph.Output})
					if !ok {
						// The upstream node was dropped from this block's
						// order (e.g. it sits on a cycle); its
						// contribution is silently absent rather than a
						// fatal error.
						continue
					}
					inBuf.AddFrom(upBuf, buffer.SampleLocation{}, buffer.SampleLocation{}, numChannels, numFrames)
				}
				input = buffer.NewSlice(inBuf, 0, numFrames)
			}
		}

		outBuf, ok := d.pool.TakeUnassigned()
		debug.Assert(ok, "buffer pool exhausted allocating a node's output buffer")
		if !ok {
			// Skip the node: it contributes silence downstream this block.
			if inBuf != nil {
				d.pool.Return(inBuf)
			}
			continue
		}

		node.Processor.ProcessAudio(input, buffer.NewSlice(outBuf, 0, numFrames), startTime, node.Parameters)

		if inBuf != nil {
			d.pool.Return(inBuf)
		}
		d.pool.ReturnAssigned(outBuf, graph.Endpoint{Node: node.Id, Kind: graph.Output})
	}

	if outId, ok := d.graph.OutputNode(); ok {
		if outBuf, ok := d.pool.PeekAssigned(graph.Endpoint{Node: outId, Kind: graph.Output}); ok {
			external.AddFrom(outBuf, buffer.SampleLocation{}, buffer.SampleLocation{}, numChannels, numFrames)
		}
	}

	d.pool.ClearAssignments()
	debug.Assert(d.pool.AllFree(), "buffer pool leaked a buffer across a block")
}
