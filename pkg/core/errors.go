package core

import (
	"errors"
	"fmt"
)

// Sentinel errors of the pipeline domain. Typed errors below match them via errors.Is.
var (
	ErrUnknownNodeKind = errors.New("unknown node kind")
	ErrNodeNotFound    = errors.New("node not found")
	ErrEdgeNotFound    = errors.New("edge not found")
	ErrInvalidPort     = errors.New("invalid port")
	ErrMalformedGraph  = errors.New("malformed graph")
)

// PortDirection distinguishes input (target) from output (source) ports.
type PortDirection string

// Port directions.
const (
	PortInput  PortDirection = "input"
	PortOutput PortDirection = "output"
)

// UnknownNodeKindError is returned when a kind string is not in the registry.
type UnknownNodeKindError struct {
	Kind string
}

func (e *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("unknown node kind %q", e.Kind)
}

// Is reports whether target is ErrUnknownNodeKind.
func (e *UnknownNodeKindError) Is(target error) bool { return target == ErrUnknownNodeKind }

// NodeNotFoundError is returned when an operation references an absent node ID.
type NodeNotFoundError struct {
	NodeID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %q not found", e.NodeID)
}

// Is reports whether target is ErrNodeNotFound.
func (e *NodeNotFoundError) Is(target error) bool { return target == ErrNodeNotFound }

// InvalidPortError is returned when a port index is outside a node's current range.
type InvalidPortError struct {
	NodeID    string
	Direction PortDirection
	Index     int
	Count     int
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("node %q has %d %s port(s), index %d is out of range",
		e.NodeID, e.Count, e.Direction, e.Index)
}

// Is reports whether target is ErrInvalidPort.
func (e *InvalidPortError) Is(target error) bool { return target == ErrInvalidPort }

// MalformedGraphError describes a submitted graph that fails referential integrity.
// EdgeID or NodeID locate the offending element; either may be empty.
type MalformedGraphError struct {
	EdgeID string
	NodeID string
	Reason string
}

func (e *MalformedGraphError) Error() string {
	switch {
	case e.EdgeID != "" && e.NodeID != "":
		return fmt.Sprintf("malformed graph: edge %q: %s %q", e.EdgeID, e.Reason, e.NodeID)
	case e.EdgeID != "":
		return fmt.Sprintf("malformed graph: edge %q: %s", e.EdgeID, e.Reason)
	case e.NodeID != "":
		return fmt.Sprintf("malformed graph: node %q: %s", e.NodeID, e.Reason)
	default:
		return "malformed graph: " + e.Reason
	}
}

// Is reports whether target is ErrMalformedGraph.
func (e *MalformedGraphError) Is(target error) bool { return target == ErrMalformedGraph }
