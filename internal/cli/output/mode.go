// Package output renders CLI results for terminals, pipes and machines.
//
// Auto mode picks styled text when stdout is a terminal and markdown
// otherwise, so piped output stays readable for scripts and agents.
package output

import "strings"

// OutputMode selects how results are rendered.
type OutputMode string

// Supported output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode parses a config value into an OutputMode. Unknown values fall back to auto.
func Mode(s string) OutputMode {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeText:
		return ModeText
	case ModeMarkdown, "md":
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}
