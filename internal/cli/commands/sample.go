package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapflow/internal/pipeline"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample pipeline",
		Long: `Print the sample pipeline the HTTP service validates at /pipelines/test.

The output is a complete pipeline file and can be fed back to validate.`,
		Example: `  # Save the sample as YAML
  leapflow sample --format yaml > sample.yaml

  # Validate it straight away
  leapflow sample | leapflow validate -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pipeline.Sample()
			if err != nil {
				return fmt.Errorf("failed to build sample pipeline: %w", err)
			}
			g := p.ToSerializable()
			r := NewCommandContext(cmd).Renderer

			switch strings.ToLower(format) {
			case "json":
				return r.JSON(g)
			case "yaml", "yml":
				enc := yaml.NewEncoder(r.Writer())
				enc.SetIndent(2)
				if err := enc.Encode(g); err != nil {
					return fmt.Errorf("failed to encode sample: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (expected json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Pipeline file format (json|yaml)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
