package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer writes command output in the configured mode.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	mode    OutputMode
	isTTY   bool
	styles  Styles
	printer *message.Printer
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	return &Renderer{
		out:     out,
		errOut:  errOut,
		mode:    mode,
		isTTY:   isTTY,
		styles:  newStyles(out, isTTY),
		printer: message.NewPrinter(language.English),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms
}

// EffectiveMode resolves auto into text or markdown.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Styles returns the text-mode styles.
func (r *Renderer) Styles() Styles { return r.styles }

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Count formats n with thousands separators.
func (r *Renderer) Count(n int) string {
	return r.printer.Sprintf("%d", n)
}

// Header writes a level 1 or 2 heading in the effective mode.
func (r *Renderer) Header(level int, title string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, title))
		r.Println("")
		return
	}
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(title))
	r.Println("")
}

// Success writes a success line.
func (r *Renderer) Success(msg string) {
	r.status(r.styles.Success.Render("✓"), "OK", msg)
}

// Warning writes a warning line.
func (r *Renderer) Warning(msg string) {
	r.status(r.styles.Warning.Render("!"), "WARN", msg)
}

// Error writes an error line to stderr.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintf(r.errOut, "%s %s\n", r.styles.Error.Render("✗"), msg)
		return
	}
	_, _ = fmt.Fprintf(r.errOut, "**ERROR**: %s\n", msg)
}

func (r *Renderer) status(symbol, label, msg string) {
	if r.EffectiveMode() == ModeText {
		r.Printf("%s %s\n", symbol, msg)
		return
	}
	r.Printf("- **%s**: %s\n", label, msg)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders rows as a box table in text mode and a markdown table otherwise.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		t.SetStyle(table.StyleLight)
		t.Render()
		return
	}
	t.RenderMarkdown()
}

// FormatHeader returns a markdown heading.
func FormatHeader(level int, title string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + title
}

// FormatKeyValue returns a markdown bullet with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}

// FormatList returns items as a markdown bullet list, or "_none_" when empty.
func FormatList(items []string) string {
	if len(items) == 0 {
		return "_none_"
	}
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(item)
	}
	return sb.String()
}
