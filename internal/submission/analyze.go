package submission

import (
	"github.com/leapstack-labs/leapflow/internal/dag"
	"github.com/leapstack-labs/leapflow/internal/pipeline"
	"github.com/leapstack-labs/leapflow/pkg/core"
)

// Response messages.
const (
	MessageDAG    = "Pipeline parsed successfully. Graph is a DAG."
	MessageCyclic = "Pipeline parsed successfully. Graph contains cycles."
)

// Analyze checks a submitted graph and validates it. Graphs that break
// referential integrity fail with a *core.MalformedGraphError naming the first
// offending node or edge, before cycle detection runs. A cyclic graph is a
// normal result, not an error.
func Analyze(req Request, opts ...pipeline.Option) (core.ValidationResult, error) {
	p, err := pipeline.Load(req.Graph(), opts...)
	if err != nil {
		return core.ValidationResult{}, err
	}

	res := dag.Validate(req.Nodes, req.Edges)
	res.Message = message(res.IsDAG)
	res.Warnings = p.Warnings()
	return res, nil
}

// Report extends a ValidationResult with the graph's shape, for human-facing output.
type Report struct {
	Result core.ValidationResult `json:"result"`
	// Cycle is one cycle found, starting and ending with the same node. Empty for DAGs.
	Cycle []string `json:"cycle,omitempty"`
	// Order is a topological order of the node IDs. Empty for cyclic graphs.
	Order []string `json:"order,omitempty"`
	// Levels groups node IDs by execution level. Empty for cyclic graphs.
	Levels [][]string `json:"levels,omitempty"`
	Roots  []string   `json:"roots,omitempty"`
	Leaves []string   `json:"leaves,omitempty"`
}

// Inspect is Analyze plus the cycle path, or the topological order and
// execution levels, of the graph.
func Inspect(req Request, opts ...pipeline.Option) (*Report, error) {
	res, err := Analyze(req, opts...)
	if err != nil {
		return nil, err
	}

	g, err := dag.FromPipeline(req.Nodes, req.Edges)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Result: res,
		Roots:  g.Roots(),
		Leaves: g.Leaves(),
	}
	if res.IsDAG {
		if report.Order, err = g.TopologicalSort(); err != nil {
			return nil, err
		}
		if report.Levels, err = g.ExecutionLevels(); err != nil {
			return nil, err
		}
	} else {
		_, report.Cycle = g.HasCycle()
	}
	return report, nil
}

func message(isDAG bool) string {
	if isDAG {
		return MessageDAG
	}
	return MessageCyclic
}
