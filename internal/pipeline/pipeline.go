// Package pipeline holds the editable in-memory model of a pipeline graph.
//
// Nodes and edges live in arenas keyed by stable IDs; edges reference node IDs,
// never node values. Every mutating operation either applies fully or fails
// without touching the model. Cycles are allowed while editing: acyclicity is
// checked only when the graph is submitted (see package dag).
//
// A Pipeline belongs to a single editing session and is not safe for concurrent use.
package pipeline

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapflow/internal/registry"
	"github.com/leapstack-labs/leapflow/pkg/core"
)

// Pipeline is an editable pipeline graph.
type Pipeline struct {
	registry *registry.Registry
	newID    func(prefix string) string

	nodes     map[string]*core.Node
	nodeOrder []string
	edges     map[string]*core.Edge
	edgeOrder []string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegistry sets the node type registry. Defaults to registry.Default().
func WithRegistry(r *registry.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithIDGenerator replaces the UUID-based ID generator. The prefix is the node
// kind for nodes and "edge" for edges.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(p *Pipeline) { p.newID = fn }
}

func uuidID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// New creates an empty pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: registry.Default(),
		newID:    uuidID,
		nodes:    make(map[string]*core.Node),
		edges:    make(map[string]*core.Edge),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// UpdateResult is returned by UpdateNodeConfig. Everything in it is informational:
// the update has already been applied.
type UpdateResult struct {
	Node core.Node
	// Dangling lists edges whose handle on this node no longer exists.
	// They are kept in the model until removed explicitly.
	Dangling         []core.DanglingEdge
	UnrecognizedKeys []string
	InvalidOptions   []string
}

// AddNode creates a node of the given kind with a fresh ID. initial is merged
// over the kind's defaults. It fails only if kind is not registered.
func (p *Pipeline) AddNode(kind core.NodeKind, pos core.Position, initial core.Config) (core.Node, error) {
	defaults, err := p.registry.Defaults(kind)
	if err != nil {
		return core.Node{}, err
	}

	id := p.newID(string(kind))
	for p.nodes[id] != nil {
		id = p.newID(string(kind))
	}

	node := &core.Node{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Data:     defaults.Merge(initial),
	}
	p.nodes[id] = node
	p.nodeOrder = append(p.nodeOrder, id)

	return cloneNode(node), nil
}

// UpdateNodeConfig shallow-merges partial into the node's configuration.
// For Text nodes a changed "content" re-derives the input ports; edges that
// pointed at a port that disappeared are reported as dangling, not deleted.
func (p *Pipeline) UpdateNodeConfig(nodeID string, partial core.Config) (UpdateResult, error) {
	node, ok := p.nodes[nodeID]
	if !ok {
		return UpdateResult{}, &core.NodeNotFoundError{NodeID: nodeID}
	}

	updated := cloneNode(node)
	updated.Data = node.Data.Merge(partial)

	dangling := p.danglingFor(&updated)

	p.nodes[nodeID] = &updated

	return UpdateResult{
		Node:             cloneNode(&updated),
		Dangling:         dangling,
		UnrecognizedKeys: p.registry.UnrecognizedKeys(updated.Kind, updated.Data),
		InvalidOptions:   p.registry.InvalidOptions(updated.Kind, updated.Data),
	}, nil
}

// Connect adds an edge from output port sourcePort of sourceID to input port
// targetPort of targetID. Port indices are checked against the nodes' current
// ports. Connect does not reject cycles.
func (p *Pipeline) Connect(sourceID string, sourcePort int, targetID string, targetPort int) (core.Edge, error) {
	source, ok := p.nodes[sourceID]
	if !ok {
		return core.Edge{}, &core.NodeNotFoundError{NodeID: sourceID}
	}
	target, ok := p.nodes[targetID]
	if !ok {
		return core.Edge{}, &core.NodeNotFoundError{NodeID: targetID}
	}

	_, outputs, err := p.registry.Ports(source.Kind, source.Data)
	if err != nil {
		return core.Edge{}, fmt.Errorf("source %q: %w", sourceID, err)
	}
	inputs, _, err := p.registry.Ports(target.Kind, target.Data)
	if err != nil {
		return core.Edge{}, fmt.Errorf("target %q: %w", targetID, err)
	}

	if sourcePort < 0 || sourcePort >= len(outputs) {
		return core.Edge{}, &core.InvalidPortError{NodeID: sourceID, Direction: core.PortOutput, Index: sourcePort, Count: len(outputs)}
	}
	if targetPort < 0 || targetPort >= len(inputs) {
		return core.Edge{}, &core.InvalidPortError{NodeID: targetID, Direction: core.PortInput, Index: targetPort, Count: len(inputs)}
	}

	id := p.newID("edge")
	for p.edges[id] != nil {
		id = p.newID("edge")
	}

	edge := &core.Edge{
		ID:           id,
		Source:       sourceID,
		Target:       targetID,
		SourceHandle: outputs[sourcePort],
		TargetHandle: inputs[targetPort],
	}
	p.edges[id] = edge
	p.edgeOrder = append(p.edgeOrder, id)

	return *edge, nil
}

// RemoveEdge deletes an edge, typically one reported as dangling.
func (p *Pipeline) RemoveEdge(edgeID string) error {
	if _, ok := p.edges[edgeID]; !ok {
		return fmt.Errorf("%w: %q", core.ErrEdgeNotFound, edgeID)
	}
	delete(p.edges, edgeID)
	p.edgeOrder = slices.DeleteFunc(p.edgeOrder, func(id string) bool { return id == edgeID })
	return nil
}

// Node returns a copy of the node with the given ID.
func (p *Pipeline) Node(id string) (core.Node, bool) {
	node, ok := p.nodes[id]
	if !ok {
		return core.Node{}, false
	}
	return cloneNode(node), true
}

// Nodes returns copies of all nodes in insertion order.
func (p *Pipeline) Nodes() []core.Node {
	out := make([]core.Node, 0, len(p.nodeOrder))
	for _, id := range p.nodeOrder {
		out = append(out, cloneNode(p.nodes[id]))
	}
	return out
}

// Edges returns all edges in insertion order.
func (p *Pipeline) Edges() []core.Edge {
	out := make([]core.Edge, 0, len(p.edgeOrder))
	for _, id := range p.edgeOrder {
		out = append(out, *p.edges[id])
	}
	return out
}

// Ports returns the current input and output handles of a node.
func (p *Pipeline) Ports(nodeID string) (inputs, outputs []string, err error) {
	node, ok := p.nodes[nodeID]
	if !ok {
		return nil, nil, &core.NodeNotFoundError{NodeID: nodeID}
	}
	return p.registry.Ports(node.Kind, node.Data)
}

// DanglingEdges returns every edge that names a handle its node does not have,
// in edge order. A target handle is reported before a source handle of the
// same edge.
func (p *Pipeline) DanglingEdges() []core.DanglingEdge {
	cache := make(map[string]*handleSet, len(p.nodes))
	var dangling []core.DanglingEdge
	for _, id := range p.edgeOrder {
		e := p.edges[id]
		if e.TargetHandle != "" {
			if h := p.handlesOf(cache, e.Target); h != nil && !h.inputs[e.TargetHandle] {
				dangling = append(dangling, core.DanglingEdge{EdgeID: e.ID, NodeID: e.Target, Handle: e.TargetHandle})
			}
		}
		if e.SourceHandle != "" {
			if h := p.handlesOf(cache, e.Source); h != nil && !h.outputs[e.SourceHandle] {
				dangling = append(dangling, core.DanglingEdge{EdgeID: e.ID, NodeID: e.Source, Handle: e.SourceHandle})
			}
		}
	}
	return dangling
}

type handleSet struct {
	inputs, outputs map[string]bool
}

// handlesOf resolves the ports of nodeID once per cache. It returns nil for
// missing nodes and unregistered kinds.
func (p *Pipeline) handlesOf(cache map[string]*handleSet, nodeID string) *handleSet {
	if h, ok := cache[nodeID]; ok {
		return h
	}
	var h *handleSet
	if node, ok := p.nodes[nodeID]; ok {
		if inputs, outputs, err := p.registry.Ports(node.Kind, node.Data); err == nil {
			h = &handleSet{inputs: toSet(inputs), outputs: toSet(outputs)}
		}
	}
	cache[nodeID] = h
	return h
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Reset removes all nodes and edges.
func (p *Pipeline) Reset() {
	p.nodes = make(map[string]*core.Node)
	p.nodeOrder = nil
	p.edges = make(map[string]*core.Edge)
	p.edgeOrder = nil
}

// ToSerializable flattens the pipeline into the wire shape, in insertion order.
func (p *Pipeline) ToSerializable() core.Graph {
	return core.Graph{
		Nodes: p.Nodes(),
		Edges: p.Edges(),
	}
}

// danglingFor checks the edges attached to node against node's current ports.
// Empty handles address the node's default port and never dangle. Nodes of
// unregistered kinds have no known ports and are skipped.
func (p *Pipeline) danglingFor(node *core.Node) []core.DanglingEdge {
	inputs, outputs, err := p.registry.Ports(node.Kind, node.Data)
	if err != nil {
		return nil
	}

	var dangling []core.DanglingEdge
	for _, id := range p.edgeOrder {
		e := p.edges[id]
		if e.Target == node.ID && e.TargetHandle != "" && !slices.Contains(inputs, e.TargetHandle) {
			dangling = append(dangling, core.DanglingEdge{EdgeID: e.ID, NodeID: node.ID, Handle: e.TargetHandle})
		}
		if e.Source == node.ID && e.SourceHandle != "" && !slices.Contains(outputs, e.SourceHandle) {
			dangling = append(dangling, core.DanglingEdge{EdgeID: e.ID, NodeID: node.ID, Handle: e.SourceHandle})
		}
	}
	return dangling
}

func cloneNode(n *core.Node) core.Node {
	out := *n
	out.Data = n.Data.Clone()
	return out
}
