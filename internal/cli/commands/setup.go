package commands

import (
	"log/slog"

	"github.com/leapstack-labs/leapflow/internal/cli/config"
	"github.com/leapstack-labs/leapflow/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config and logger the root command stored
// in cmd's context and builds a renderer for cmd's output streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}
