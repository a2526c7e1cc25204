package core

import "maps"

// NodeKind is the type tag of a pipeline node. It is the "type" field on the wire.
type NodeKind string

// Node kind constants.
const (
	KindInput     NodeKind = "input"
	KindOutput    NodeKind = "output"
	KindText      NodeKind = "text"
	KindLLM       NodeKind = "llm"
	KindFilter    NodeKind = "filter"
	KindTransform NodeKind = "transform"
	KindAggregate NodeKind = "aggregate"
	KindCondition NodeKind = "condition"
	KindJoin      NodeKind = "join"
)

// AllKinds lists every built-in node kind in catalog order.
var AllKinds = []NodeKind{
	KindInput,
	KindOutput,
	KindText,
	KindLLM,
	KindFilter,
	KindTransform,
	KindAggregate,
	KindCondition,
	KindJoin,
}

// String returns the wire name of the kind.
func (k NodeKind) String() string { return string(k) }

// Position is the canvas location of a node. It has no meaning for validation.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Config is the kind-specific configuration of a node, keyed by option name.
type Config map[string]any

// Clone returns a shallow copy of the config. A nil config clones to an empty one.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	maps.Copy(out, c)
	return out
}

// Merge returns a new config with overrides applied on top of c.
// Keys absent from overrides are kept as they are.
func (c Config) Merge(overrides Config) Config {
	out := c.Clone()
	maps.Copy(out, overrides)
	return out
}

// String returns the string value stored under key, or "" if absent or not a string.
func (c Config) String(key string) string {
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}

// Node is a typed vertex of a pipeline graph.
type Node struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Kind     NodeKind `json:"type" yaml:"type" validate:"required"`
	Position Position `json:"position" yaml:"position"`
	Data     Config   `json:"data" yaml:"data"`
}

// Edge is a directed connection from one node's output handle to another node's input handle.
// Handles are optional on the wire; an empty handle means "the node's default port".
type Edge struct {
	ID           string `json:"id" yaml:"id" validate:"required"`
	Source       string `json:"source" yaml:"source" validate:"required"`
	Target       string `json:"target" yaml:"target" validate:"required"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
}

// Graph is the serialized form of a pipeline: ordered nodes and an edge list.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" validate:"dive"`
	Edges []Edge `json:"edges" yaml:"edges" validate:"dive"`
}

// DanglingEdge reports an edge whose handle no longer exists on its node
// after the node's port set changed.
type DanglingEdge struct {
	EdgeID string `json:"edge_id"`
	NodeID string `json:"node_id"`
	Handle string `json:"handle"`
}
