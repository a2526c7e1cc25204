package submission

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/leapflow/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	body := `{
		"nodes": [
			{"id": "input-1", "type": "input", "position": {"x": 100, "y": 50}, "data": {"label": "Data Source"}, "width": 220, "selected": true},
			{"id": "text-1", "type": "text", "position": {"x": 100, "y": 150}, "data": {"content": "Process {{data}}"}}
		],
		"edges": [
			{"id": "e1-2", "source": "input-1", "target": "text-1", "sourceHandle": null, "targetHandle": "data", "animated": true}
		]
	}`

	req, err := Decode(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, req.Nodes, 2)
	assert.Equal(t, core.KindText, req.Nodes[1].Kind)
	assert.Equal(t, core.Position{X: 100, Y: 50}, req.Nodes[0].Position)
	require.Len(t, req.Edges, 1)
	assert.Equal(t, "", req.Edges[0].SourceHandle)
	assert.Equal(t, "data", req.Edges[0].TargetHandle)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", "", "empty body"},
		{"not json", "nodes: []", "invalid character"},
		{"missing nodes", `{"edges": []}`, "nodes is required"},
		{"missing edges", `{"nodes": []}`, "edges is required"},
		{"node without id", `{"nodes": [{"type": "input"}], "edges": []}`, "nodes[0].id is required"},
		{"edge without target", `{"nodes": [], "edges": [{"id": "e", "source": "a"}]}`, "edges[0].target is required"},
		{"wrong type", `{"nodes": {}, "edges": []}`, "cannot unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecode_EmptyGraph(t *testing.T) {
	req, err := Decode(strings.NewReader(`{"nodes": [], "edges": []}`))
	require.NoError(t, err)

	res, err := Analyze(req)
	require.NoError(t, err)
	assert.Equal(t, core.ValidationResult{NumNodes: 0, NumEdges: 0, IsDAG: true, Message: MessageDAG}, res)
}

func TestDecodeFile(t *testing.T) {
	req, err := DecodeFile(filepath.Join("testdata", "diamond.yaml"))
	require.NoError(t, err)
	assert.Len(t, req.Nodes, 4)
	assert.Len(t, req.Edges, 4)
	assert.Equal(t, "less", req.Nodes[1].Data["operator"])

	req, err = DecodeFile(filepath.Join("testdata", "cycle.json"))
	require.NoError(t, err)
	assert.Len(t, req.Nodes, 3)

	_, err = DecodeFile(filepath.Join("testdata", "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	empty := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = DecodeFile(empty)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestAnalyze_Scenarios(t *testing.T) {
	cycle, err := DecodeFile(filepath.Join("testdata", "cycle.json"))
	require.NoError(t, err)
	res, err := Analyze(cycle)
	require.NoError(t, err)
	assert.Equal(t, 3, res.NumNodes)
	assert.Equal(t, 3, res.NumEdges)
	assert.False(t, res.IsDAG)
	assert.Equal(t, MessageCyclic, res.Message)

	diamond, err := DecodeFile(filepath.Join("testdata", "diamond.yaml"))
	require.NoError(t, err)
	res, err = Analyze(diamond)
	require.NoError(t, err)
	assert.Equal(t, 4, res.NumNodes)
	assert.Equal(t, 4, res.NumEdges)
	assert.True(t, res.IsDAG)
	assert.Equal(t, MessageDAG, res.Message)
	assert.Empty(t, res.Warnings)
}

func TestAnalyze_MalformedFailsFast(t *testing.T) {
	req := Request{
		Nodes: []core.Node{{ID: "a", Kind: core.KindInput}},
		Edges: []core.Edge{{ID: "e1", Source: "a", Target: "ghost"}},
	}

	_, err := Analyze(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMalformedGraph))
	assert.Contains(t, err.Error(), `"ghost"`)
	assert.Contains(t, err.Error(), `"e1"`)

	_, err = Inspect(req)
	assert.True(t, errors.Is(err, core.ErrMalformedGraph))
}

func TestAnalyze_WarningsDoNotAffectVerdict(t *testing.T) {
	req := Request{
		Nodes: []core.Node{
			{ID: "a", Kind: "mystery"},
			{ID: "b", Kind: core.KindText, Data: core.Config{"content": "{{x}}"}},
		},
		Edges: []core.Edge{{ID: "e1", Source: "a", Target: "b", TargetHandle: "y"}},
	}

	res, err := Analyze(req)
	require.NoError(t, err)
	assert.True(t, res.IsDAG)
	assert.Len(t, res.Warnings, 2)
}

func TestAnalyze_LongChain(t *testing.T) {
	const n = 50000
	req := Request{
		Nodes: make([]core.Node, n),
		Edges: make([]core.Edge, 0, n),
	}
	for i := range n {
		req.Nodes[i] = core.Node{ID: fmt.Sprintf("t%d", i), Kind: core.KindTransform}
		if i > 0 {
			req.Edges = append(req.Edges, core.Edge{
				ID:           fmt.Sprintf("e%d", i),
				Source:       fmt.Sprintf("t%d", i-1),
				Target:       fmt.Sprintf("t%d", i),
				SourceHandle: "output-0",
				TargetHandle: "input-0",
			})
		}
	}
	// The last edge names a handle the node does not have.
	req.Edges[n-2].TargetHandle = "input-9"

	start := time.Now()
	res, err := Analyze(req)
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.True(t, res.IsDAG)
	assert.Equal(t, n, res.NumNodes)
	assert.Equal(t, n-1, res.NumEdges)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `"input-9"`)
	assert.Less(t, elapsed, 5*time.Second, "analysis must stay linear in nodes and edges")
}

func TestInspect(t *testing.T) {
	diamond, err := DecodeFile(filepath.Join("testdata", "diamond.yaml"))
	require.NoError(t, err)

	report, err := Inspect(diamond)
	require.NoError(t, err)
	assert.True(t, report.Result.IsDAG)
	assert.Equal(t, []string{"A", "B", "C", "D"}, report.Order)
	assert.Equal(t, [][]string{{"A"}, {"B", "C"}, {"D"}}, report.Levels)
	assert.Equal(t, []string{"A"}, report.Roots)
	assert.Equal(t, []string{"D"}, report.Leaves)
	assert.Empty(t, report.Cycle)

	cycle, err := DecodeFile(filepath.Join("testdata", "cycle.json"))
	require.NoError(t, err)

	report, err = Inspect(cycle)
	require.NoError(t, err)
	assert.False(t, report.Result.IsDAG)
	assert.Equal(t, []string{"A", "B", "C", "A"}, report.Cycle)
	assert.Empty(t, report.Levels)
	assert.Empty(t, report.Order)
}
