package dag

import (
	"fmt"

	"github.com/leapstack-labs/leapflow/pkg/core"
)

// FromPipeline builds a Graph from pipeline nodes and edges.
// It fails on the first edge that references a node absent from nodes.
func FromPipeline(nodes []core.Node, edges []core.Edge) (*Graph, error) {
	g := New()
	for i := range nodes {
		g.AddNode(nodes[i].ID, &nodes[i])
	}
	for _, e := range edges {
		if err := g.AddEdge(e.Source, e.Target); err != nil {
			return nil, fmt.Errorf("edge %q: %w", e.ID, err)
		}
	}
	return g, nil
}

// Validate reports whether the graph induced by nodes and edges is acyclic,
// together with the node and edge counts. Edges are counted with multiplicity.
//
// Validate assumes referential integrity has been checked by the caller;
// an edge naming an unknown node is counted but cannot contribute to a cycle.
// Neither slice is modified.
func Validate(nodes []core.Node, edges []core.Edge) core.ValidationResult {
	g := New()
	for i := range nodes {
		g.AddNode(nodes[i].ID, nil)
	}
	for _, e := range edges {
		_ = g.AddEdge(e.Source, e.Target)
	}

	hasCycle, _ := g.HasCycle()
	return core.ValidationResult{
		NumNodes: len(nodes),
		NumEdges: len(edges),
		IsDAG:    !hasCycle,
	}
}
