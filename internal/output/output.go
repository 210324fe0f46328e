// Package output provides consistent CLI output formatting for checklists.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Symbols printed in front of each checklist line.
const (
	SymbolPass = "✅"
	SymbolFail = "❌"
)

const (
	colorGreen = "154"
	colorRed   = "196"
	colorGray  = "245"
)

// Styles holds the lipgloss styles used for terminal rendering.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns coloured styles.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
	}
}

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	styles Styles
}

// New creates a Writer. Colour is used only when out is a terminal.
func New(out io.Writer) *Writer {
	if IsTTY(out) {
		return NewWithStyles(out, DefaultStyles())
	}
	return NewWithStyles(out, NoColorStyles())
}

// NewWithStyles creates a Writer with explicit styles.
func NewWithStyles(out io.Writer, styles Styles) *Writer {
	return &Writer{out: out, styles: styles}
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Status prints a line with an icon. Errors from writing are ignored for
// console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Pass prints a passing checklist line.
func (w *Writer) Pass(msg string) {
	w.Status(SymbolPass, w.styles.Success.Render(msg))
}

// Fail prints a failing checklist line.
func (w *Writer) Fail(msg string) {
	w.Status(SymbolFail, w.styles.Error.Render(msg))
}

// Detail prints an indented secondary line.
func (w *Writer) Detail(msg string) {
	w.Status("", w.styles.Dim.Render(msg))
}

// Header prints a bold heading followed by an underline of the same width.
func (w *Writer) Header(title string) {
	_, _ = fmt.Fprintln(w.out, w.styles.Header.Render(title))
	_, _ = fmt.Fprintln(w.out, w.styles.Dim.Render(strings.Repeat("=", lipgloss.Width(title))))
}

// Summary prints the final verdict line in the success or error style.
func (w *Writer) Summary(ok bool, msg string) {
	style := w.styles.Error
	if ok {
		style = w.styles.Success
	}
	_, _ = fmt.Fprintln(w.out, style.Render(msg))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
