// Package graph implements the directed-acyclic processing graph: nodes
// wrap a realtime Processor and its parameters, connections describe how
// one node's output feeds another's input, and TopologicalSort produces the
// per-block render order.
package graph

import (
	"github.com/audiograph/engine/pkg/framework/buffer"
	"github.com/audiograph/engine/pkg/framework/param"
	"github.com/audiograph/engine/pkg/id"
	"github.com/audiograph/engine/pkg/timestamp"
)

// Processor is the realtime rendering capability every graph node supplies.
// Implementations must not allocate: input holds the sum of every connected
// upstream buffer (or nil if the node has no inputs), output is the buffer
// to fill, startTime is the timestamp of output's first frame, and
// parameters is the node's own registry to read automation from.
type Processor interface {
	ProcessAudio(input, output buffer.AudioBuffer, startTime timestamp.Timestamp, parameters *param.Registry)
}

// Kind distinguishes the sides of a connection. The engine supports only
// single-output nodes, so every Endpoint in practice names a node's sole
// output; Kind exists to keep Endpoint's meaning explicit at call sites and
// to leave room for a future input-side endpoint without reshaping callers.
type Kind int

const (
	// Output names a node's rendered buffer as the source side of a
	// connection, or as the tag under which the scheduler stashes it in the
	// buffer pool for the duration of a block.
	Output Kind = iota
)

// Endpoint addresses one node's buffer for buffer-pool tagging and
// connection bookkeeping.
type Endpoint struct {
	Node id.Id
	Kind Kind
}

// Connection is a directed edge: From's output feeds into To's input.
// Duplicate connections between the same pair are permitted and each
// contributes its own summed copy of From's output to To, matching the
// "fan out to a mixer" scenario of feeding the same source into a
// destination more than once.
type Connection struct {
	From id.Id
	To   id.Id
}

// Dsp wraps a realtime Processor with the identity and parameter registry
// the graph and scheduler need around it.
type Dsp struct {
	Id         id.Id
	Processor  Processor
	Parameters *param.Registry
}

// NewDsp creates a node with a fresh id, wrapping processor and registry.
func NewDsp(processor Processor, parameters *param.Registry) *Dsp {
	return &Dsp{Id: id.Generate(), Processor: processor, Parameters: parameters}
}

// Graph holds the set of nodes and connections that make up one engine
// instance's processing topology, plus one external "output" sink
// connection that routes a node's signal to the engine's external buffer.
type Graph struct {
	nodes       map[id.Id]*Dsp
	connections []Connection
	outputNode  id.Id
	hasOutput   bool

	sortedCache []*Dsp
	dirty       bool

	// Scratch state for TopologicalSort, reused across recomputes instead of
	// reallocated, since it only runs on the audio thread when the topology
	// changes (pre-sized the way the original's with_capacity(512) is).
	scratchInDegree map[id.Id]int
	scratchVisited  map[id.Id]bool
	scratchReady    []id.Id
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:           make(map[id.Id]*Dsp),
		dirty:           true,
		scratchInDegree: make(map[id.Id]int, 512),
		scratchVisited:  make(map[id.Id]bool, 512),
		scratchReady:    make([]id.Id, 0, 512),
	}
}

// AddNode inserts dsp into the graph.
func (g *Graph) AddNode(dsp *Dsp) {
	g.nodes[dsp.Id] = dsp
	g.dirty = true
}

// RemoveNode drops a node and every connection touching it.
func (g *Graph) RemoveNode(nodeId id.Id) {
	delete(g.nodes, nodeId)

	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.From != nodeId && c.To != nodeId {
			kept = append(kept, c)
		}
	}
	g.connections = kept

	if g.hasOutput && g.outputNode == nodeId {
		g.hasOutput = false
	}
	g.dirty = true
}

// Node looks up a node by id.
func (g *Graph) Node(nodeId id.Id) (*Dsp, bool) {
	d, ok := g.nodes[nodeId]
	return d, ok
}

// Nodes returns every node currently in the graph, in no particular order.
func (g *Graph) Nodes() []*Dsp {
	out := make([]*Dsp, 0, len(g.nodes))
	for _, d := range g.nodes {
		out = append(out, d)
	}
	return out
}

// AddConnection routes from's output into to's input.
func (g *Graph) AddConnection(from, to id.Id) {
	g.connections = append(g.connections, Connection{From: from, To: to})
	g.dirty = true
}

// RemoveConnection removes the first matching from->to connection, if any.
// With duplicate connections between the same pair, this removes exactly
// one instance.
func (g *Graph) RemoveConnection(from, to id.Id) {
	for i, c := range g.connections {
		if c.From == from && c.To == to {
			g.connections = append(g.connections[:i], g.connections[i+1:]...)
			g.dirty = true
			return
		}
	}
}

// ConnectToOutput marks nodeId as feeding the engine's external output
// buffer. Only one node may be the output sink at a time; a later call
// replaces the previous one.
func (g *Graph) ConnectToOutput(nodeId id.Id) {
	g.outputNode = nodeId
	g.hasOutput = true
}

// OutputNode returns the node currently routed to the external output, if
// any.
func (g *Graph) OutputNode() (id.Id, bool) {
	return g.outputNode, g.hasOutput
}

// Upstream returns the ids of every node whose output feeds into nodeId,
// once per connection (so a duplicated connection appears twice).
func (g *Graph) Upstream(nodeId id.Id) []id.Id {
	var out []id.Id
	for _, c := range g.connections {
		if c.To == nodeId {
			out = append(out, c.From)
		}
	}
	return out
}

// Downstream returns the ids of every node that nodeId's output feeds into.
func (g *Graph) Downstream(nodeId id.Id) []id.Id {
	var out []id.Id
	for _, c := range g.connections {
		if c.From == nodeId {
			out = append(out, c.To)
		}
	}
	return out
}
