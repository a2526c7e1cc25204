package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/leapstack-labs/leapflow/internal/cli/output"
	"github.com/leapstack-labs/leapflow/internal/registry"
	"github.com/leapstack-labs/leapflow/internal/template"
)

// generateNodeTypeDocs writes the node type reference from the registry.
func generateNodeTypeDocs(outDir string) error {
	log.Printf("Generating node type docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Node Types", "Reference of every pipeline node type")
	w.GeneratedMarker()

	w.Header(1, "Node Types")
	w.Paragraph("Ports are addressed by handle. Fixed ports are named `input-<i>` and `output-<i>`, counting from zero.")

	kinds := registry.Default().Kinds()

	rows := make([][]string, 0, len(kinds))
	for _, spec := range kinds {
		inputs := fmt.Sprint(spec.InputPorts)
		if spec.DynamicInputs {
			inputs = "dynamic"
		}
		rows = append(rows, []string{InlineCode(string(spec.Kind)), spec.Label, inputs, fmt.Sprint(spec.OutputPorts)})
	}
	w.Table([]string{"Type", "Label", "Inputs", "Outputs"}, rows)

	for _, spec := range kinds {
		w.Header(2, output.Title(string(spec.Kind)))
		if spec.Description != "" {
			w.Paragraph(spec.Description)
		}
		if spec.DynamicInputs {
			w.Paragraph(fmt.Sprintf("Input handles are the distinct `{{name}}` variables in `content`, in order of first appearance. "+
				"Without variables the node has a single %s handle.", InlineCode(template.DefaultInputPort)))
		}

		fieldRows := make([][]string, 0, len(spec.Fields))
		for _, f := range spec.Fields {
			options := "-"
			if len(f.Options) > 0 {
				options = strings.Join(f.Options, ", ")
			}
			fieldRows = append(fieldRows, []string{InlineCode(f.Key), InlineCode(fmt.Sprint(f.Default)), options})
		}
		w.Table([]string{"Key", "Default", "Options"}, fieldRows)
	}

	if err := writePage(outDir, "node-types.md", w); err != nil {
		return fmt.Errorf("failed to generate node-types.md: %w", err)
	}
	log.Printf("  Generated node-types.md")
	return nil
}
