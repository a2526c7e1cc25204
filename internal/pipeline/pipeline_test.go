package pipeline

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leapflow/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline() *Pipeline {
	return New(WithIDGenerator(SequentialIDs()))
}

func TestAddNode_MergesOverDefaults(t *testing.T) {
	p := newTestPipeline()

	node, err := p.AddNode(core.KindFilter, core.Position{X: 10, Y: 20}, core.Config{"operator": "less", "extra": 1})
	require.NoError(t, err)

	assert.Equal(t, "filter-1", node.ID)
	assert.Equal(t, core.KindFilter, node.Kind)
	assert.Equal(t, core.Position{X: 10, Y: 20}, node.Position)
	assert.Equal(t, core.Config{
		"label":    "Filter Node",
		"field":    "value",
		"operator": "less",
		"value":    "",
		"extra":    1,
	}, node.Data)
}

func TestAddNode_UniqueIDs(t *testing.T) {
	p := New()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		node, err := p.AddNode(core.KindInput, core.Position{}, nil)
		require.NoError(t, err)
		require.False(t, seen[node.ID], "duplicate id %s", node.ID)
		seen[node.ID] = true
	}
}

func TestAddNode_RetriesCollidingIDs(t *testing.T) {
	calls := 0
	p := New(WithIDGenerator(func(prefix string) string {
		calls++
		if calls <= 2 {
			return "fixed"
		}
		return "other"
	}))

	first, err := p.AddNode(core.KindInput, core.Position{}, nil)
	require.NoError(t, err)
	second, err := p.AddNode(core.KindInput, core.Position{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "fixed", first.ID)
	assert.Equal(t, "other", second.ID)
}

func TestAddNode_UnknownKind(t *testing.T) {
	p := newTestPipeline()

	_, err := p.AddNode("widget", core.Position{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownNodeKind))
	assert.Empty(t, p.Nodes())
}

func TestAddNode_ReturnsCopy(t *testing.T) {
	p := newTestPipeline()

	node, err := p.AddNode(core.KindLLM, core.Position{}, nil)
	require.NoError(t, err)
	node.Data["model"] = "mutated"

	stored, ok := p.Node(node.ID)
	require.True(t, ok)
	assert.Equal(t, "gpt-4", stored.Data["model"])
}

func TestUpdateNodeConfig_ShallowMerge(t *testing.T) {
	p := newTestPipeline()
	node, err := p.AddNode(core.KindJoin, core.Position{}, nil)
	require.NoError(t, err)

	res, err := p.UpdateNodeConfig(node.ID, core.Config{"leftKey": "id"})
	require.NoError(t, err)

	assert.Equal(t, "id", res.Node.Data["leftKey"])
	assert.Equal(t, "inner", res.Node.Data["joinType"], "keys not in the update are untouched")
	assert.Empty(t, res.Dangling)
	assert.Empty(t, res.UnrecognizedKeys)
}

func TestUpdateNodeConfig_NotFound(t *testing.T) {
	p := newTestPipeline()

	_, err := p.UpdateNodeConfig("ghost", core.Config{"a": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))

	var nf *core.NodeNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "ghost", nf.NodeID)
}

func TestUpdateNodeConfig_FlagsUnrecognizedKeys(t *testing.T) {
	p := newTestPipeline()
	node, err := p.AddNode(core.KindCondition, core.Position{}, nil)
	require.NoError(t, err)

	res, err := p.UpdateNodeConfig(node.ID, core.Config{"threshold": 3, "operator": "between"})
	require.NoError(t, err)

	assert.Equal(t, []string{"threshold"}, res.UnrecognizedKeys)
	require.Len(t, res.InvalidOptions, 1)
	assert.Contains(t, res.InvalidOptions[0], "operator")
	assert.Equal(t, 3, res.Node.Data["threshold"], "unrecognized keys are accepted")
}

func TestUpdateNodeConfig_TextReportsDanglingEdge(t *testing.T) {
	p := newTestPipeline()
	src, err := p.AddNode(core.KindInput, core.Position{}, nil)
	require.NoError(t, err)
	text, err := p.AddNode(core.KindText, core.Position{}, core.Config{"content": "value of {{x}}"})
	require.NoError(t, err)

	edge, err := p.Connect(src.ID, 0, text.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "x", edge.TargetHandle)

	res, err := p.UpdateNodeConfig(text.ID, core.Config{"content": "no placeholders now"})
	require.NoError(t, err)

	require.Len(t, res.Dangling, 1)
	assert.Equal(t, core.DanglingEdge{EdgeID: edge.ID, NodeID: text.ID, Handle: "x"}, res.Dangling[0])

	// The edge is kept until removed explicitly
	assert.Len(t, p.Edges(), 1)
	assert.Equal(t, res.Dangling, p.DanglingEdges())

	inputs, _, err := p.Ports(text.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"default-input"}, inputs)

	require.NoError(t, p.RemoveEdge(edge.ID))
	assert.Empty(t, p.Edges())
	assert.Empty(t, p.DanglingEdges())
}

func TestUpdateNodeConfig_RestoringVariableHealsEdge(t *testing.T) {
	p := newTestPipeline()
	src, _ := p.AddNode(core.KindInput, core.Position{}, nil)
	text, _ := p.AddNode(core.KindText, core.Position{}, core.Config{"content": "{{a}} {{b}}"})

	_, err := p.Connect(src.ID, 0, text.ID, 1)
	require.NoError(t, err)

	res, err := p.UpdateNodeConfig(text.ID, core.Config{"content": "{{a}}"})
	require.NoError(t, err)
	require.Len(t, res.Dangling, 1)
	assert.Equal(t, "b", res.Dangling[0].Handle)

	res, err = p.UpdateNodeConfig(text.ID, core.Config{"content": "{{b}} first, then {{a}}"})
	require.NoError(t, err)
	assert.Empty(t, res.Dangling, "edge targets port by name, so reordering keeps it valid")
}

func TestConnect(t *testing.T) {
	p := newTestPipeline()
	filter, _ := p.AddNode(core.KindFilter, core.Position{}, nil)
	join, _ := p.AddNode(core.KindJoin, core.Position{}, nil)

	edge, err := p.Connect(filter.ID, 1, join.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, core.Edge{
		ID:           "edge-1",
		Source:       filter.ID,
		Target:       join.ID,
		SourceHandle: "output-1",
		TargetHandle: "input-1",
	}, edge)
}

func TestConnect_Errors(t *testing.T) {
	p := newTestPipeline()
	input, _ := p.AddNode(core.KindInput, core.Position{}, nil)
	text, _ := p.AddNode(core.KindText, core.Position{}, core.Config{"content": "{{a}} and {{b}}"})

	tests := []struct {
		name       string
		source     string
		sourcePort int
		target     string
		targetPort int
		sentinel   error
	}{
		{"unknown source", "ghost", 0, text.ID, 0, core.ErrNodeNotFound},
		{"unknown target", input.ID, 0, "ghost", 0, core.ErrNodeNotFound},
		{"target port beyond dynamic count", input.ID, 0, text.ID, 2, core.ErrInvalidPort},
		{"negative target port", input.ID, 0, text.ID, -1, core.ErrInvalidPort},
		{"source port out of range", input.ID, 1, text.ID, 0, core.ErrInvalidPort},
		{"input node has no input ports", text.ID, 0, input.ID, 0, core.ErrInvalidPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Connect(tt.source, tt.sourcePort, tt.target, tt.targetPort)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}

	assert.Empty(t, p.Edges(), "failed connects must not add edges")
}

func TestConnect_InvalidPortDetails(t *testing.T) {
	p := newTestPipeline()
	input, _ := p.AddNode(core.KindInput, core.Position{}, nil)
	text, _ := p.AddNode(core.KindText, core.Position{}, core.Config{"content": "{{only}}"})

	_, err := p.Connect(input.ID, 0, text.ID, 1)

	var portErr *core.InvalidPortError
	require.True(t, errors.As(err, &portErr))
	assert.Equal(t, text.ID, portErr.NodeID)
	assert.Equal(t, core.PortInput, portErr.Direction)
	assert.Equal(t, 1, portErr.Index)
	assert.Equal(t, 1, portErr.Count)
}

func TestConnect_AllowsCycles(t *testing.T) {
	p := newTestPipeline()
	a, _ := p.AddNode(core.KindTransform, core.Position{}, nil)
	b, _ := p.AddNode(core.KindTransform, core.Position{}, nil)

	_, err := p.Connect(a.ID, 0, b.ID, 0)
	require.NoError(t, err)
	_, err = p.Connect(b.ID, 0, a.ID, 0)
	require.NoError(t, err)
	_, err = p.Connect(a.ID, 0, a.ID, 0)
	require.NoError(t, err)

	assert.Len(t, p.Edges(), 3)
}

func TestRemoveEdge_NotFound(t *testing.T) {
	p := newTestPipeline()
	err := p.RemoveEdge("nope")
	assert.True(t, errors.Is(err, core.ErrEdgeNotFound))
}

func TestToSerializable_InsertionOrder(t *testing.T) {
	p := newTestPipeline()
	in, _ := p.AddNode(core.KindInput, core.Position{}, nil)
	out, _ := p.AddNode(core.KindOutput, core.Position{}, nil)
	_, err := p.Connect(in.ID, 0, out.ID, 0)
	require.NoError(t, err)

	g := p.ToSerializable()
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "input-1", g.Nodes[0].ID)
	assert.Equal(t, "output-1", g.Nodes[1].ID)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "edge-1", g.Edges[0].ID)
}

func TestReset(t *testing.T) {
	p := newTestPipeline()
	in, _ := p.AddNode(core.KindInput, core.Position{}, nil)
	out, _ := p.AddNode(core.KindOutput, core.Position{}, nil)
	_, _ = p.Connect(in.ID, 0, out.ID, 0)

	p.Reset()

	g := p.ToSerializable()
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}
