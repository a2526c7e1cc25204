package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapflow/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envVars lists the environment variables documented on the CLI index page.
var envVars = [][]string{
	{"LEAPFLOW_OUTPUT", "Default output format"},
	{"LEAPFLOW_LOG_LEVEL", "Log level"},
	{"LEAPFLOW_LOG_FORMAT", "Log format"},
	{"LEAPFLOW_SERVER__PORT", "Port for `leapflow serve`"},
	{"LEAPFLOW_SERVER__ALLOWED_ORIGINS", "Comma-separated editor origins allowed by CORS"},
}

// generateCLIDocs writes an index page plus one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	commands := visibleCommands(root)

	if err := writePage(outDir, "index.md", cliIndex(root, commands)); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}

	for _, cmd := range commands {
		if err := writePage(outDir, cmd.Name()+".md", commandPage(cmd)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
	}

	log.Printf("  Generated index.md and %d command pages", len(commands))
	return nil
}

func writePage(dir, name string, w *MarkdownWriter) error {
	return os.WriteFile(filepath.Join(dir, name), w.Bytes(), 0600)
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		switch {
		case cmd.Hidden, cmd.Name() == "help", cmd.Name() == "__complete":
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliIndex(root *cobra.Command, commands []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for leapflow")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("leapflow validates pipeline graph files offline and serves the validation API the pipeline editor submits to.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leapflow/cmd/leapflow@latest")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(commands))
	for _, cmd := range commands {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key can be set with a `LEAPFLOW_` environment variable. Nested keys use a double underscore.")
	env := make([][]string, 0, len(envVars))
	for _, v := range envVars {
		env = append(env, []string{InlineCode(v[0]), v[1]})
	}
	w.Table([]string{"Variable", "Description"}, env)
	w.Paragraph("Flags override environment variables, which override `leapflow.yaml`.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, including pipeline files that failed validation"},
	})
	return w
}

func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	w.Paragraph(firstNonEmpty(cmd.Long, cmd.Short))

	w.Header(2, "Usage")
	use := cmd.UseLine()
	if !strings.HasPrefix(use, "leapflow") {
		use = "leapflow " + use
	}
	w.CodeBlock("bash", use)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.BulletList(aliases)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(cmd.LocalFlags()))
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		w.Table(flagHeaders, flagRows(cmd.InheritedFlags()))
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	return w
}

var flagHeaders = []string{"Option", "Short", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		var short string
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		def := f.DefValue
		if def != "" && f.Value.Type() == "string" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	return rows
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// cleanExample strips the indentation shared by all non-blank lines.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
