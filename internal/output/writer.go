// Package output formats everything seroost prints to stdout: status lines,
// ranked results as text or JSON, and the usage guide.
//
// The result renderers are pure functions of their inputs; ranking happens
// in package search and never here.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Writer prints labelled status lines such as "Indexing directory: /docs".
type Writer struct {
	out    io.Writer
	label  lipgloss.Style
	value  lipgloss.Style
	warn   lipgloss.Style
	failed lipgloss.Style
}

// New creates a Writer. Colors are used only when color is true and out is
// a terminal that supports them.
func New(out io.Writer, color bool) *Writer {
	r := lipgloss.NewRenderer(out)
	w := &Writer{
		out:    out,
		label:  r.NewStyle(),
		value:  r.NewStyle(),
		warn:   r.NewStyle(),
		failed: r.NewStyle(),
	}
	if color {
		w.label = r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorGreen))
		w.value = r.NewStyle().Foreground(lipgloss.Color(colorBlue))
		w.warn = r.NewStyle().Foreground(lipgloss.Color(colorYellow))
		w.failed = r.NewStyle().Bold(true).Foreground(lipgloss.Color(colorRed))
	}
	return w
}

// Field prints "label value".
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Field(label, value string) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.label.Render(label), w.value.Render(value))
}

// Fieldf prints a label followed by a formatted value.
func (w *Writer) Fieldf(label, format string, args ...any) {
	w.Field(label, fmt.Sprintf(format, args...))
}

// Warning prints a warning line.
func (w *Writer) Warning(msg string) {
	_, _ = fmt.Fprintln(w.out, w.warn.Render(msg))
}

// Error prints an error line.
func (w *Writer) Error(msg string) {
	_, _ = fmt.Fprintln(w.out, w.failed.Render(msg))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
