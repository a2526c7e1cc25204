package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	assert.Equal(t, "validate <file>...", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist (output is a global flag on root, not local)
	flags := []string{"watch", "fail-on-cycle", "debounce"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "w", cmd.Flags().Lookup("watch").Shorthand)
}

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand("test")

	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"port", "host", "allowed-origin", "max-body-bytes"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewNodeTypesCommand(t *testing.T) {
	cmd := NewNodeTypesCommand()

	assert.Equal(t, "node-types [type]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	kinds, _ := cmd.ValidArgsFunction(cmd, nil, "")
	assert.Contains(t, kinds, "join")
	assert.Len(t, kinds, 9)
}

func TestNewSampleCommand(t *testing.T) {
	cmd := NewSampleCommand()

	assert.Equal(t, "sample", cmd.Use)
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}
