// Package testutil holds pipeline fixtures and output helpers for CLI tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapflow/internal/cli/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DAGPipeline is a small acyclic pipeline file in JSON.
const DAGPipeline = `{
  "nodes": [
    {"id": "in", "type": "input", "position": {"x": 0, "y": 0}, "data": {"label": "Source"}},
    {"id": "tpl", "type": "text", "data": {"content": "Summarize {{doc}}"}},
    {"id": "ai", "type": "llm", "data": {"model": "gpt-4"}},
    {"id": "out", "type": "output", "data": {}}
  ],
  "edges": [
    {"id": "e1", "source": "in", "target": "tpl", "sourceHandle": "output-0", "targetHandle": "doc"},
    {"id": "e2", "source": "tpl", "target": "ai"},
    {"id": "e3", "source": "ai", "target": "out"}
  ]
}`

// CyclicPipeline is a pipeline file in YAML whose two transforms feed each other.
const CyclicPipeline = `nodes:
  - id: a
    type: transform
  - id: b
    type: transform
edges:
  - {id: e1, source: a, target: b}
  - {id: e2, source: b, target: a}
`

// MalformedPipeline references a node that does not exist.
const MalformedPipeline = `{"nodes": [{"id": "a", "type": "input"}], "edges": [{"id": "e1", "source": "a", "target": "ghost"}]}`

// WritePipeline writes content to name inside a fresh temp dir and returns its path.
func WritePipeline(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// Capture is a renderer whose streams are kept in memory.
type Capture struct {
	R      *output.Renderer
	Stdout bytes.Buffer
	Stderr bytes.Buffer
}

// Render returns a Capture in mode. Text mode behaves as if attached to a
// terminal; the other modes as if piped.
func Render(mode output.OutputMode) *Capture {
	c := &Capture{}
	c.R = output.NewRendererWithTTY(&c.Stdout, &c.Stderr, mode == output.ModeText, mode)
	return c
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI fails the test when s contains terminal escape sequences.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	assert.NotRegexp(t, ansiEscape, s, "unexpected ANSI escape codes")
}

// AssertValidMarkdown fails the test on unbalanced code fences or headers
// without text.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()
	assert.Zero(t, strings.Count(md, "```")%2, "unbalanced code fences")
	for n, line := range strings.Split(md, "\n") {
		if h := strings.TrimSpace(line); strings.HasPrefix(h, "#") {
			assert.NotEmpty(t, strings.TrimLeft(h, "# "), "empty header on line %d", n+1)
		}
	}
}
