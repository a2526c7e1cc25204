package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapflow/internal/cli/output"
	"github.com/leapstack-labs/leapflow/internal/registry"
	"github.com/leapstack-labs/leapflow/pkg/core"
	"github.com/spf13/cobra"
)

// NewNodeTypesCommand creates the node-types command.
func NewNodeTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node-types [type]",
		Short: "List the available node types",
		Long: `List every node type a pipeline may use, with its port layout.

Given a type, show its configuration keys, their defaults and the values
the editor offers for them.`,
		Example: `  # List all node types
  leapflow node-types

  # Show the configuration of join nodes
  leapflow node-types join`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			kinds := make([]string, 0, len(core.AllKinds))
			for _, k := range core.AllKinds {
				kinds = append(kinds, string(k))
			}
			return kinds, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := NewCommandContext(cmd).Renderer
			reg := registry.Default()

			if len(args) == 1 {
				spec, err := reg.Lookup(core.NodeKind(args[0]))
				if err != nil {
					return err
				}
				return renderKind(r, spec)
			}
			return renderKinds(r, reg.Kinds())
		},
	}

	return cmd
}

func inputsLabel(spec *registry.KindSpec) string {
	if spec.DynamicInputs {
		return "dynamic"
	}
	return fmt.Sprintf("%d", spec.InputPorts)
}

func renderKinds(r *output.Renderer, kinds []*registry.KindSpec) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(kinds)
	}

	rows := make([][]string, 0, len(kinds))
	for _, spec := range kinds {
		keys := make([]string, 0, len(spec.Fields))
		for _, f := range spec.Fields {
			keys = append(keys, f.Key)
		}
		rows = append(rows, []string{
			string(spec.Kind),
			spec.Label,
			inputsLabel(spec),
			fmt.Sprintf("%d", spec.OutputPorts),
			strings.Join(keys, ", "),
		})
	}

	r.Header(1, "Node Types")
	r.Table([]string{"Type", "Label", "Inputs", "Outputs", "Config"}, rows)
	return nil
}

func renderKind(r *output.Renderer, spec *registry.KindSpec) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(spec)
	}

	r.Header(1, output.Title(string(spec.Kind))+" Node")
	if spec.Description != "" {
		r.Println(spec.Description)
		r.Println("")
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatKeyValue("Type", "`"+string(spec.Kind)+"`"))
		r.Println(output.FormatKeyValue("Inputs", inputsLabel(spec)))
		r.Println(output.FormatKeyValue("Outputs", fmt.Sprintf("%d", spec.OutputPorts)))
	} else {
		styles := r.Styles()
		r.Printf("%s %s\n", styles.Key.Render("Type:"), styles.Kind.Render(string(spec.Kind)))
		r.Printf("%s %s\n", styles.Key.Render("Inputs:"), inputsLabel(spec))
		r.Printf("%s %s\n", styles.Key.Render("Outputs:"), fmt.Sprintf("%d", spec.OutputPorts))
	}
	r.Println("")

	rows := make([][]string, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		rows = append(rows, []string{f.Key, fmt.Sprintf("%v", f.Default), strings.Join(f.Options, ", ")})
	}
	r.Table([]string{"Key", "Default", "Options"}, rows)
	return nil
}
