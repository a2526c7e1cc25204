package commands

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/leapstack-labs/leapflow/internal/cli/output"
	"github.com/leapstack-labs/leapflow/internal/submission"
	"github.com/leapstack-labs/leapflow/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// stdinPath is the file argument that reads a pipeline from standard input.
const stdinPath = "-"

// ErrValidationFailed is returned when at least one file could not be validated,
// or contained a cycle while --fail-on-cycle was set.
var ErrValidationFailed = errors.New("validation failed")

type validateOptions struct {
	watch       bool
	failOnCycle bool
	debounce    time.Duration
}

// fileResult is the outcome of validating one pipeline file.
type fileResult struct {
	Path   string
	Report *submission.Report
	Err    error
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate pipeline files",
		Long: `Validate one or more pipeline graphs saved as JSON or YAML.

Each file is checked the same way the HTTP service checks a submission:
node and edge IDs must be unique, every edge must reference existing nodes,
and the graph is tested for cycles. Unknown node types, unrecognized config
keys and edges naming ports that do not exist are reported as warnings.

Use "-" to read a JSON pipeline from standard input.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Validate a pipeline
  leapflow validate pipeline.json

  # Validate several files, failing if any contains a cycle
  leapflow validate --fail-on-cycle pipelines/*.yaml

  # Re-validate whenever the files change
  leapflow validate --watch pipeline.yaml

  # Validate the built-in sample
  leapflow sample | leapflow validate -o json -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-validate when files change")
	cmd.Flags().BoolVar(&opts.failOnCycle, "fail-on-cycle", false, "Exit with an error if any graph contains a cycle")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-validating in watch mode")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *validateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if stdin := countStdin(args); stdin > 0 {
		if opts.watch {
			return fmt.Errorf("--watch cannot be combined with standard input")
		}
		if stdin > 1 {
			return fmt.Errorf("standard input (%q) can be read only once, got it %d times", stdinPath, stdin)
		}
	}

	results := validateFiles(cmd.Context(), cmd, args)
	err := renderResults(r, results, opts.failOnCycle)

	if !opts.watch {
		return err
	}

	cmdCtx.Logger.Info("watching for changes", "files", len(args))
	return watch.Files(cmd.Context(), args, opts.debounce, cmdCtx.Logger, func(changed []string) {
		results := validateFiles(cmd.Context(), cmd, changed)
		if err := renderResults(r, results, opts.failOnCycle); err != nil {
			r.Error(err.Error())
		}
	})
}

func countStdin(args []string) int {
	n := 0
	for _, a := range args {
		if a == stdinPath {
			n++
		}
	}
	return n
}

// validateFiles validates every path concurrently. Results keep the order of paths.
func validateFiles(ctx context.Context, cmd *cobra.Command, paths []string) []fileResult {
	results := make([]fileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = fileResult{Path: path, Err: err}
				return nil
			}
			results[i] = validateFile(cmd, path)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func validateFile(cmd *cobra.Command, path string) fileResult {
	var (
		req submission.Request
		err error
	)
	if path == stdinPath {
		req, err = submission.Decode(cmd.InOrStdin())
	} else {
		req, err = submission.DecodeFile(path)
	}
	if err != nil {
		return fileResult{Path: path, Err: err}
	}

	report, err := submission.Inspect(req)
	if err != nil {
		return fileResult{Path: path, Err: err}
	}
	return fileResult{Path: path, Report: report}
}

// renderResults prints results in the renderer's mode and returns
// ErrValidationFailed when any file failed.
func renderResults(r *output.Renderer, results []fileResult, failOnCycle bool) error {
	var failed, cyclic int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
		case !res.Report.Result.IsDAG:
			cyclic++
		}
	}

	var err error
	switch r.EffectiveMode() {
	case output.ModeJSON:
		err = validateJSON(r, results, failed, cyclic)
	case output.ModeMarkdown:
		validateMarkdown(r, results, failed, cyclic)
	default:
		validateText(r, results, failed, cyclic)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files could not be validated", ErrValidationFailed, failed, len(results))
	}
	if failOnCycle && cyclic > 0 {
		return fmt.Errorf("%w: %d of %d graphs contain cycles", ErrValidationFailed, cyclic, len(results))
	}
	return nil
}

func validateText(r *output.Renderer, results []fileResult, failed, cyclic int) {
	styles := r.Styles()

	for _, res := range results {
		r.Println(styles.Header1.Render(res.Path))

		if res.Err != nil {
			r.Printf("  %s %s\n\n", styles.Error.Render("✗"), res.Err)
			continue
		}

		result := res.Report.Result
		counts := fmt.Sprintf("(%s nodes, %s edges)", r.Count(result.NumNodes), r.Count(result.NumEdges))
		if result.IsDAG {
			r.Printf("  %s %s %s\n", styles.Success.Render("✓"), result.Message, styles.Muted.Render(counts))
		} else {
			r.Printf("  %s %s %s\n", styles.Warning.Render("↻"), result.Message, styles.Muted.Render(counts))
			r.Printf("    %s %s\n", styles.Muted.Render("cycle:"), styles.NodeID.Render(strings.Join(res.Report.Cycle, " → ")))
		}

		if len(res.Report.Order) > 0 {
			r.Printf("    %s %s\n", styles.Muted.Render("order:"), strings.Join(res.Report.Order, " → "))
		}
		for i, level := range res.Report.Levels {
			r.Printf("    %s %s\n", styles.Muted.Render(fmt.Sprintf("level %d:", i)), strings.Join(level, ", "))
		}
		for _, w := range result.Warnings {
			r.Printf("    %s %s\n", styles.Warning.Render("!"), w)
		}
		r.Println("")
	}

	summary := fmt.Sprintf("Total: %d files, %d acyclic, %d cyclic, %d failed",
		len(results), len(results)-failed-cyclic, cyclic, failed)
	if failed+cyclic == 0 {
		r.Success(summary)
	} else {
		r.Warning(summary)
	}
}

func validateMarkdown(r *output.Renderer, results []fileResult, failed, cyclic int) {
	r.Println(output.FormatHeader(1, "Pipeline Validation"))
	r.Println("")

	for _, res := range results {
		r.Println(output.FormatHeader(2, res.Path))

		if res.Err != nil {
			r.Println(output.FormatKeyValue("Error", res.Err.Error()))
			r.Println("")
			continue
		}

		result := res.Report.Result
		r.Println(output.FormatKeyValue("Nodes", r.Count(result.NumNodes)))
		r.Println(output.FormatKeyValue("Edges", r.Count(result.NumEdges)))
		r.Println(output.FormatKeyValue("DAG", yesNo(result.IsDAG)))
		r.Println(output.FormatKeyValue("Message", result.Message))
		r.Println("")

		if len(res.Report.Cycle) > 0 {
			r.Println(output.FormatHeader(3, "Cycle"))
			r.Println(strings.Join(res.Report.Cycle, " → "))
			r.Println("")
		}
		if len(res.Report.Order) > 0 {
			r.Println(output.FormatKeyValue("Order", strings.Join(res.Report.Order, " → ")))
			r.Println("")
		}
		if len(res.Report.Levels) > 0 {
			r.Println(output.FormatHeader(3, "Execution Levels"))
			for i, level := range res.Report.Levels {
				r.Printf("- Level %d: %s\n", i, strings.Join(level, ", "))
			}
			r.Println("")
		}
		if len(result.Warnings) > 0 {
			r.Println(output.FormatHeader(3, "Warnings"))
			r.Println(output.FormatList(result.Warnings))
			r.Println("")
		}
	}

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Files", fmt.Sprintf("%d", len(results))))
	r.Println(output.FormatKeyValue("Acyclic", fmt.Sprintf("%d", len(results)-failed-cyclic)))
	r.Println(output.FormatKeyValue("Cyclic", fmt.Sprintf("%d", cyclic)))
	r.Println(output.FormatKeyValue("Failed", fmt.Sprintf("%d", failed)))
}

func validateJSON(r *output.Renderer, results []fileResult, failed, cyclic int) error {
	summary := output.ValidationSummary{
		Files:  make([]output.ValidationOutput, 0, len(results)),
		Valid:  len(results) - failed - cyclic,
		Cyclic: cyclic,
		Failed: failed,
	}

	for _, res := range results {
		out := output.ValidationOutput{File: res.Path}
		if res.Err != nil {
			out.Error = res.Err.Error()
		} else {
			result := res.Report.Result
			out.NumNodes = result.NumNodes
			out.NumEdges = result.NumEdges
			out.IsDAG = &result.IsDAG
			out.Message = result.Message
			out.Warnings = result.Warnings
			out.Cycle = res.Report.Cycle
			out.Order = res.Report.Order
			out.Levels = res.Report.Levels
			out.Roots = res.Report.Roots
			out.Leaves = res.Report.Leaves
		}
		summary.Files = append(summary.Files, out)
	}

	return r.JSON(summary)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
