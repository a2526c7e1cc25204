package pipeline

import (
	"fmt"

	"github.com/leapstack-labs/leapflow/pkg/core"
)

// SequentialIDs returns an ID generator producing "<prefix>-1", "<prefix>-2", ...
// with one counter per prefix. Useful for fixtures and reproducible output.
func SequentialIDs() func(prefix string) string {
	counters := make(map[string]int)
	return func(prefix string) string {
		counters[prefix]++
		return fmt.Sprintf("%s-%d", prefix, counters[prefix])
	}
}

// Sample builds the starter pipeline the editor opens with: a source feeding a
// text template, filter and transform branches merged by an aggregate, then a
// condition and a join feeding an LLM call that writes to an output.
func Sample(opts ...Option) (*Pipeline, error) {
	p := New(append([]Option{WithIDGenerator(SequentialIDs())}, opts...)...)

	type spec struct {
		kind core.NodeKind
		pos  core.Position
		cfg  core.Config
	}
	specs := []spec{
		{core.KindInput, core.Position{X: 100, Y: 50}, core.Config{"label": "Data Source"}},
		{core.KindText, core.Position{X: 100, Y: 150}, core.Config{"label": "Text Processor", "content": "Process {{data}} with {{algorithm}}"}},
		{core.KindFilter, core.Position{X: 100, Y: 300}, core.Config{"label": "Data Filter"}},
		{core.KindTransform, core.Position{X: 300, Y: 150}, core.Config{"label": "Data Transformer"}},
		{core.KindAggregate, core.Position{X: 300, Y: 300}, core.Config{"label": "Aggregator"}},
		{core.KindCondition, core.Position{X: 500, Y: 150}, core.Config{"label": "Condition Check"}},
		{core.KindJoin, core.Position{X: 500, Y: 300}, core.Config{"label": "Data Joiner"}},
		{core.KindLLM, core.Position{X: 700, Y: 150}, core.Config{"label": "AI Processor", "prompt": "Analyze the results"}},
		{core.KindOutput, core.Position{X: 700, Y: 300}, core.Config{"label": "Results Output"}},
	}

	ids := make(map[core.NodeKind]string, len(specs))
	for _, s := range specs {
		node, err := p.AddNode(s.kind, s.pos, s.cfg)
		if err != nil {
			return nil, err
		}
		ids[s.kind] = node.ID
	}

	links := []struct {
		from     core.NodeKind
		fromPort int
		to       core.NodeKind
		toPort   int
	}{
		{core.KindInput, 0, core.KindText, 0},
		{core.KindText, 0, core.KindFilter, 0},
		{core.KindText, 0, core.KindTransform, 0},
		{core.KindFilter, 0, core.KindAggregate, 0},
		{core.KindTransform, 0, core.KindAggregate, 1},
		{core.KindAggregate, 0, core.KindCondition, 0},
		{core.KindAggregate, 0, core.KindJoin, 0},
		{core.KindCondition, 0, core.KindLLM, 0},
		{core.KindJoin, 0, core.KindLLM, 0},
		{core.KindLLM, 0, core.KindOutput, 0},
	}
	for _, l := range links {
		if _, err := p.Connect(ids[l.from], l.fromPort, ids[l.to], l.toPort); err != nil {
			return nil, fmt.Errorf("sample link %s -> %s: %w", l.from, l.to, err)
		}
	}

	return p, nil
}
