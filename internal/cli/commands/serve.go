package commands

import (
	"github.com/leapstack-labs/leapflow/internal/registry"
	"github.com/leapstack-labs/leapflow/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the pipeline validation service",
		Long: `Start the HTTP service the visual pipeline editor submits graphs to.

Endpoints:
  GET  /                  service information
  GET  /health            liveness check
  POST /pipelines/parse   validate a pipeline graph
  GET  /pipelines/test    validate the built-in sample pipeline
  GET  /node-types        node type catalog
  GET  /metrics           prometheus metrics

The server stops gracefully on interrupt.`,
		Example: `  # Serve on the default port (8000)
  leapflow serve

  # Serve on another port for a specific editor origin
  leapflow serve --port 9000 --allowed-origin https://editor.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)

			srv := server.New(server.Config{
				Server:   cmdCtx.Cfg.Server,
				Registry: registry.Default(),
				Logger:   cmdCtx.Logger,
				Version:  version,
			})
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().IntP("port", "p", 0, "Port to listen on (default 8000)")
	cmd.Flags().String("host", "", "Interface to bind (default all interfaces)")
	cmd.Flags().StringSlice("allowed-origin", nil, "Editor origin allowed by CORS (repeatable)")
	cmd.Flags().Int64("max-body-bytes", 0, "Maximum request body size in bytes")

	return cmd
}
