package pipeline

import (
	"fmt"

	"github.com/leapstack-labs/leapflow/pkg/core"
)

// Load rebuilds a pipeline from its serialized form, keeping node and edge IDs.
// It rejects graphs that break referential integrity: duplicate node or edge IDs
// and edges whose source or target is not among the nodes. The first offending
// element is reported as a *core.MalformedGraphError.
//
// Load is permissive about content: nodes of unregistered kinds and unknown
// configuration keys are accepted and surface through Warnings.
func Load(g core.Graph, opts ...Option) (*Pipeline, error) {
	p := New(opts...)

	for _, n := range g.Nodes {
		if _, dup := p.nodes[n.ID]; dup {
			return nil, &core.MalformedGraphError{NodeID: n.ID, Reason: "duplicate node id"}
		}
		node := cloneNode(&n)
		p.nodes[n.ID] = &node
		p.nodeOrder = append(p.nodeOrder, n.ID)
	}

	for _, e := range g.Edges {
		if _, dup := p.edges[e.ID]; dup {
			return nil, &core.MalformedGraphError{EdgeID: e.ID, Reason: "duplicate edge id"}
		}
		if _, ok := p.nodes[e.Source]; !ok {
			return nil, &core.MalformedGraphError{EdgeID: e.ID, NodeID: e.Source, Reason: "source references unknown node"}
		}
		if _, ok := p.nodes[e.Target]; !ok {
			return nil, &core.MalformedGraphError{EdgeID: e.ID, NodeID: e.Target, Reason: "target references unknown node"}
		}
		edge := e
		p.edges[e.ID] = &edge
		p.edgeOrder = append(p.edgeOrder, e.ID)
	}

	return p, nil
}

// Warnings returns informational findings about the pipeline's content:
// unregistered kinds, unrecognized or out-of-range configuration values, and
// edges naming handles that do not exist. None of them make the graph invalid.
func (p *Pipeline) Warnings() []string {
	var warnings []string

	for _, id := range p.nodeOrder {
		node := p.nodes[id]
		if !p.registry.Has(node.Kind) {
			warnings = append(warnings, fmt.Sprintf("node %q: unknown node kind %q", id, node.Kind))
			continue
		}
		for _, key := range p.registry.UnrecognizedKeys(node.Kind, node.Data) {
			warnings = append(warnings, fmt.Sprintf("node %q (%s): unrecognized config key %q", id, node.Kind, key))
		}
		for _, opt := range p.registry.InvalidOptions(node.Kind, node.Data) {
			warnings = append(warnings, fmt.Sprintf("node %q (%s): %s", id, node.Kind, opt))
		}
	}

	for _, d := range p.DanglingEdges() {
		warnings = append(warnings, fmt.Sprintf("edge %q: handle %q does not exist on node %q", d.EdgeID, d.Handle, d.NodeID))
	}

	return warnings
}
