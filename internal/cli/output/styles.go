package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	NodeID  lipgloss.Style
	Kind    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
}

// newStyles builds styles bound to w. Colors are disabled when w is not a
// terminal or NO_COLOR is set.
func newStyles(w io.Writer, isTTY bool) Styles {
	lr := lipgloss.NewRenderer(w)
	if !isTTY || termenv.EnvNoColor() {
		lr.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: lr.NewStyle().Bold(true),
		NodeID:  lr.NewStyle().Foreground(lipgloss.Color("14")),
		Kind:    lr.NewStyle().Foreground(lipgloss.Color("13")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Key:     lr.NewStyle().Bold(true),
	}
}
