package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter_Table(t *testing.T) {
	w := NewMarkdownWriter()
	w.Table([]string{"Key", "Options"}, [][]string{{"joinType", "a|b"}})

	assert.Equal(t, "| Key | Options |\n| --- | --- |\n| joinType | a\\|b |\n\n", string(w.Bytes()))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Port to listen on.", cleanDescription("Port  to listen\non"))
	assert.Equal(t, "", cleanDescription(""))
}

func TestCleanExample(t *testing.T) {
	in := "  # Validate\n  leapflow validate p.json\n"
	assert.Equal(t, "# Validate\nleapflow validate p.json", cleanExample(in))
}

func TestGenerateDocs(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, generateCLIDocs(dir))
	require.NoError(t, generateSchemaDocs(dir))
	require.NoError(t, generateNodeTypeDocs(dir))

	for _, name := range []string{"index.md", "validate.md", "serve.md", "configuration.md", "node-types.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s should be generated", name)
	}

	nodes, err := os.ReadFile(filepath.Join(dir, "node-types.md"))
	require.NoError(t, err)
	assert.Contains(t, string(nodes), "`default-input`")
	assert.Equal(t, 9, strings.Count(string(nodes), "| Key | Default | Options |"), "one field table per node type")

	cfg, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "`server.port` | int | `8000`")
}
