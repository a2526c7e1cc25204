// Package cli provides the command-line interface for leapflow.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/leapstack-labs/leapflow/internal/cli/commands"
	"github.com/leapstack-labs/leapflow/internal/cli/config"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "0.1.0"

// skipConfig lists commands that run without loading configuration.
var skipConfig = map[string]bool{
	"help":                          true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

// flagChoices feeds shell completion for the enumerated persistent flags.
var flagChoices = map[string][]string{
	"output":     {"auto", "text", "markdown", "json"},
	"log-level":  {"debug", "info", "warn", "error"},
	"log-format": {"text", "json"},
}

// NewRootCmd builds the leapflow command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "leapflow",
		Short: "leapflow - Pipeline Graph Validator",
		Long: `leapflow validates pipeline graphs built in a visual node editor.

A pipeline is a directed graph of typed nodes (inputs, text templates,
AI calls, filters, transforms, aggregations, conditions, joins, outputs).
leapflow checks that a submitted graph is well formed and acyclic, either
offline from pipeline files or as an HTTP service for the editor.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfig[cmd.Name()] {
				return nil
			}
			return prepare(cmd, cfgFile)
		},
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\nPipeline graph validator built with Go\n")

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./leapflow.yaml)")
	pf.BoolP("verbose", "v", false, "Verbose output (debug logging)")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (text|json)")

	for flag, choices := range flagChoices {
		_ = root.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(choices, cobra.ShellCompDirectiveNoFileComp))
	}

	root.AddCommand(
		commands.NewVersionCommand(Version),
		commands.NewValidateCommand(),
		commands.NewServeCommand(Version),
		commands.NewNodeTypesCommand(),
		commands.NewSampleCommand(),
		NewCompletionCommand(),
	)
	return root
}

// prepare loads configuration for cmd and stores it, with the process logger,
// in the command context. cmd.Flags() includes inherited persistent flags.
func prepare(cmd *cobra.Command, cfgFile string) error {
	loader := &config.Loader{File: cfgFile, Flags: cmd.Flags()}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	logger := config.NewLogger(cmd.ErrOrStderr(), cfg)
	if f := loader.FileUsed(); f != "" {
		logger.Debug("using config file", "path", f)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = config.WithConfig(ctx, cfg)
	cmd.SetContext(config.WithLogger(ctx, logger))
	return nil
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	generators := map[string]func(cmd *cobra.Command) error{
		"bash":       func(cmd *cobra.Command) error { return cmd.Root().GenBashCompletion(cmd.OutOrStdout()) },
		"zsh":        func(cmd *cobra.Command) error { return cmd.Root().GenZshCompletion(cmd.OutOrStdout()) },
		"fish":       func(cmd *cobra.Command) error { return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true) },
		"powershell": func(cmd *cobra.Command) error { return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()) },
	}

	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for leapflow and write it to stdout.

  bash:        source <(leapflow completion bash)
  zsh:         leapflow completion zsh > "${fpath[1]}/_leapflow"
  fish:        leapflow completion fish > ~/.config/fish/completions/leapflow.fish
  powershell:  leapflow completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generators[args[0]](cmd)
		},
	}
}
