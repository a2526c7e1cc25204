// Package dag provides directed graph operations for pipeline validation.
// It supports cycle detection, topological sorting and execution levels.
// All traversals are iterative so long chains of nodes cannot exhaust the stack.
package dag

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapflow/pkg/core"
)

// CycleError reports the node IDs of a cycle. The path starts and ends
// with the same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}

// Graph is a directed graph over pipeline node IDs. It is expected, but not
// required, to be acyclic. Nodes keep their insertion order, which every
// traversal uses to break ties. Parallel edges are counted but collapse to a
// single adjacency entry.
type Graph struct {
	ids      []string
	index    map[string]int
	payload  []*core.Node
	children [][]int
	parents  [][]int
	edges    int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode adds a node with an optional payload. Adding an existing ID
// replaces its payload and keeps its position.
func (g *Graph) AddNode(id string, node *core.Node) {
	if i, ok := g.index[id]; ok {
		g.payload[i] = node
		return
	}
	g.index[id] = len(g.ids)
	g.ids = append(g.ids, id)
	g.payload = append(g.payload, node)
	g.children = append(g.children, nil)
	g.parents = append(g.parents, nil)
}

// AddEdge adds a directed edge from source to target (target depends on
// source). Self-loops are accepted; they make the graph cyclic.
func (g *Graph) AddEdge(source, target string) error {
	from, ok := g.index[source]
	if !ok {
		return fmt.Errorf("source: %w", &core.NodeNotFoundError{NodeID: source})
	}
	to, ok := g.index[target]
	if !ok {
		return fmt.Errorf("target: %w", &core.NodeNotFoundError{NodeID: target})
	}

	g.edges++
	if !slices.Contains(g.children[from], to) {
		g.children[from] = append(g.children[from], to)
		g.parents[to] = append(g.parents[to], from)
	}
	return nil
}

// nodeOf returns the payload stored for id.
func (g *Graph) nodeOf(id string) (*core.Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.payload[i], true
}

// childrenOf returns the distinct dependents of id.
func (g *Graph) childrenOf(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.names(g.children[i])
}

// parentsOf returns the distinct dependencies of id.
func (g *Graph) parentsOf(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.names(g.parents[i])
}

func (g *Graph) nodeCount() int { return len(g.ids) }

// edgeCount counts every edge added, parallel edges included.
func (g *Graph) edgeCount() int { return g.edges }

func (g *Graph) names(idx []int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = g.ids[i]
	}
	return out
}

// visit states of the three-color traversal.
const (
	white = iota
	grey
	black
)

// frame is one entry of the explicit DFS stack: a node and the position of
// the next child to explore.
type frame struct {
	node, next int
}

// HasCycle reports whether the graph contains a cycle, along with one cycle
// path. Walks start from every unvisited node in insertion order, so every
// node is visited exactly once.
func (g *Graph) HasCycle() (bool, []string) {
	color := make([]int, len(g.ids))
	// depth records where a grey node sits on the stack
	depth := make([]int, len(g.ids))

	for root := range g.ids {
		if color[root] != white {
			continue
		}
		color[root] = grey
		stack := []frame{{node: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(g.children[top.node]) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := g.children[top.node][top.next]
			top.next++

			switch color[child] {
			case white:
				color[child] = grey
				depth[child] = len(stack)
				stack = append(stack, frame{node: child})
			case grey:
				path := make([]string, 0, len(stack)-depth[child]+1)
				for _, f := range stack[depth[child]:] {
					path = append(path, g.ids[f.node])
				}
				return true, append(path, g.ids[child])
			}
		}
	}
	return false, nil
}

// order returns node indices with dependencies before dependents, ties broken
// by insertion order, or a CycleError.
func (g *Graph) order() ([]int, error) {
	if cyclic, path := g.HasCycle(); cyclic {
		return nil, &CycleError{Path: path}
	}

	pending := make([]int, len(g.ids))
	queue := make([]int, 0, len(g.ids))
	for i := range g.ids {
		pending[i] = len(g.parents[i])
		if pending[i] == 0 {
			queue = append(queue, i)
		}
	}

	for head := 0; head < len(queue); head++ {
		for _, child := range g.children[queue[head]] {
			if pending[child]--; pending[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return queue, nil
}

// TopologicalSort returns node IDs with dependencies before dependents.
// Ties are broken by insertion order. A cyclic graph yields a *CycleError.
func (g *Graph) TopologicalSort() ([]string, error) {
	sorted, err := g.order()
	if err != nil {
		return nil, err
	}
	return g.names(sorted), nil
}

// ExecutionLevels groups node IDs so that nodes at level N depend only on
// nodes at lower levels. Level 0 holds the roots. Each level is in insertion
// order.
func (g *Graph) ExecutionLevels() ([][]string, error) {
	sorted, err := g.order()
	if err != nil {
		return nil, err
	}

	level := make([]int, len(g.ids))
	var groups [][]int
	for _, n := range sorted {
		for _, p := range g.parents[n] {
			level[n] = max(level[n], level[p]+1)
		}
		for len(groups) <= level[n] {
			groups = append(groups, nil)
		}
		groups[level[n]] = append(groups[level[n]], n)
	}

	levels := make([][]string, len(groups))
	for i, group := range groups {
		slices.Sort(group)
		levels[i] = g.names(group)
	}
	return levels, nil
}

// Roots returns nodes without dependencies, in insertion order.
func (g *Graph) Roots() []string {
	var out []string
	for i, id := range g.ids {
		if len(g.parents[i]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Leaves returns nodes without dependents, in insertion order.
func (g *Graph) Leaves() []string {
	var out []string
	for i, id := range g.ids {
		if len(g.children[i]) == 0 {
			out = append(out, id)
		}
	}
	return out
}
