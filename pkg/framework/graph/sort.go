package graph

// TopologicalSort returns the nodes in an order where every node appears
// after all of its upstream dependencies, using Kahn's algorithm. The
// result is cached and only recomputed after a mutating call (AddNode,
// RemoveNode, AddConnection, RemoveConnection) sets the dirty flag.
//
// A cycle makes a full topological order impossible; rather than fail the
// whole block, every node on a cycle, and every node downstream of one, is
// dropped from the returned order (it renders silence that block, via the
// scheduler's missing-buffer handling) and the rest of the graph still gets
// an order.
func (g *Graph) TopologicalSort() []*Dsp {
	if !g.dirty {
		return g.sortedCache
	}

	inDegree := g.scratchInDegree
	clear(inDegree)
	for nodeId := range g.nodes {
		inDegree[nodeId] = 0
	}
	for _, c := range g.connections {
		if _, ok := g.nodes[c.To]; ok {
			inDegree[c.To]++
		}
	}

	ready := g.scratchReady[:0]
	for nodeId, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, nodeId)
		}
	}

	order := make([]*Dsp, 0, len(g.nodes))
	visited := g.scratchVisited
	clear(visited)

	// head indexes the front of the ready queue within the shared scratch
	// slice, so repeated pops don't walk the backing array's start forward
	// call over call the way ready = ready[1:] would.
	for head := 0; head < len(ready); head++ {
		nodeId := ready[head]

		if visited[nodeId] {
			continue
		}
		visited[nodeId] = true
		order = append(order, g.nodes[nodeId])

		for _, next := range g.Downstream(nodeId) {
			if _, ok := inDegree[next]; !ok {
				continue
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	g.scratchReady = ready

	// Any node left with nonzero in-degree sits on a cycle or downstream of
	// one. Drop it from the render order rather than refusing to process the
	// rest of the graph.
	g.sortedCache = order
	g.dirty = false
	return order
}
