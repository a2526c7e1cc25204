// Package core defines the shared language of the leapflow system.
//
// This package contains:
//   - Domain entities (Node, Edge, Graph, ValidationResult)
//   - The node kind enumeration (NodeKind)
//   - The error taxonomy shared by the registry, graph model and validator
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
