package registry

import "github.com/leapstack-labs/leapflow/pkg/core"

func labelField(label string) FieldSpec {
	return FieldSpec{Key: "label", Default: label}
}

// builtinKinds returns the specs of the node kinds the editor palette offers.
func builtinKinds() []*KindSpec {
	return []*KindSpec{
		{
			Kind:        core.KindInput,
			Label:       "Input",
			Description: "Start data source",
			Fields:      []FieldSpec{labelField("Input Node")},
			OutputPorts: 1,
		},
		{
			Kind:        core.KindOutput,
			Label:       "Output",
			Description: "Final results",
			Fields:      []FieldSpec{labelField("Output Node")},
			InputPorts:  1,
		},
		{
			Kind:        core.KindText,
			Label:       "Text",
			Description: "Text processing with {{variable}} placeholders",
			Fields: []FieldSpec{
				labelField("Text Node"),
				{Key: "content", Default: "Enter text here..."},
			},
			InputPorts:    1,
			OutputPorts:   1,
			DynamicInputs: true,
		},
		{
			Kind:        core.KindLLM,
			Label:       "LLM",
			Description: "AI processing",
			Fields: []FieldSpec{
				labelField("AI Processor"),
				{Key: "model", Default: "gpt-4", Options: []string{"gpt-4", "gpt-3.5-turbo", "claude-2", "llama-2"}},
				{Key: "prompt", Default: "Enter your prompt here..."},
			},
			InputPorts:  1,
			OutputPorts: 1,
		},
		{
			Kind:        core.KindFilter,
			Label:       "Filter",
			Description: "Filter data",
			Fields: []FieldSpec{
				labelField("Filter Node"),
				{Key: "field", Default: "value", Options: []string{"value", "date", "category"}},
				{Key: "operator", Default: "greater", Options: []string{"equals", "greater", "less", "contains"}},
				{Key: "value", Default: ""},
			},
			InputPorts:  1,
			OutputPorts: 2,
		},
		{
			Kind:        core.KindTransform,
			Label:       "Transform",
			Description: "Transform data",
			Fields: []FieldSpec{
				labelField("Transform Node"),
				{Key: "operation", Default: "uppercase", Options: []string{"uppercase", "lowercase", "trim", "extract", "replace"}},
				{Key: "pattern", Default: ""},
				{Key: "replacement", Default: ""},
			},
			InputPorts:  1,
			OutputPorts: 1,
		},
		{
			Kind:        core.KindAggregate,
			Label:       "Aggregate",
			Description: "Aggregate data",
			Fields: []FieldSpec{
				labelField("Aggregate Node"),
				{Key: "groupBy", Default: "category", Options: []string{"category", "date", "type"}},
				{Key: "aggregation", Default: "sum", Options: []string{"sum", "average", "count", "min", "max"}},
				{Key: "outputField", Default: "result"},
			},
			InputPorts:  2,
			OutputPorts: 1,
		},
		{
			Kind:        core.KindCondition,
			Label:       "Condition",
			Description: "Conditional logic",
			Fields: []FieldSpec{
				labelField("Condition Node"),
				{Key: "operator", Default: "greater", Options: []string{"equals", "greater", "less", "notequal"}},
				{Key: "value", Default: ""},
				{Key: "invert", Default: false},
			},
			InputPorts:  1,
			OutputPorts: 2,
		},
		{
			Kind:        core.KindJoin,
			Label:       "Join",
			Description: "Join data sources",
			Fields: []FieldSpec{
				labelField("Join Node"),
				{Key: "joinType", Default: "inner", Options: []string{"inner", "left", "right", "full"}},
				{Key: "leftKey", Default: ""},
				{Key: "rightKey", Default: ""},
			},
			InputPorts:  2,
			OutputPorts: 1,
		},
	}
}
