// Package template derives the dynamic input ports of Text nodes from
// the {{variable}} placeholders embedded in their content.
package template

import (
	"regexp"
	"strings"
)

// DefaultInputPort is the single input port of a Text node whose content has no variables.
const DefaultInputPort = "default-input"

// variablePattern matches {{name}} where name contains no brace. A brace inside the
// name breaks the match, so unbalanced or nested tokens are left as literal text.
var variablePattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Variables returns the distinct variable names referenced in content, trimmed,
// in order of first occurrence. Blank names such as "{{ }}" are skipped.
func Variables(content string) []string {
	matches := variablePattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	vars := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		vars = append(vars, name)
	}
	return vars
}

// InputPorts returns the input port identifiers for a Text node with the given content.
// It is recomputed on every call; there is no cache to go stale.
func InputPorts(content string) []string {
	if vars := Variables(content); len(vars) > 0 {
		return vars
	}
	return []string{DefaultInputPort}
}
