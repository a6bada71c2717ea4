// Package tui renders rolodex output for terminals: a Printer for line
// output and a Bubble Tea browser for reading the book.
package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color modes accepted by NewPrinter, matching display.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Printer writes command results, errors, and notices to one writer.
// Styling is applied only when the color mode allows it.
type Printer struct {
	w      io.Writer
	styled bool

	prompt   lipgloss.Style
	notice   lipgloss.Style
	errStyle lipgloss.Style
}

// NewPrinter creates a Printer for w. In auto mode, styling is used only
// when w is a terminal.
func NewPrinter(w io.Writer, color string) *Printer {
	if w == nil {
		w = os.Stdout
	}

	r := lipgloss.NewRenderer(w)
	styled := false
	switch color {
	case ColorAlways:
		styled = true
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		styled = IsTTY(w)
		if !styled {
			r.SetColorProfile(termenv.Ascii)
		}
	}

	return &Printer{
		w:        w,
		styled:   styled,
		prompt:   r.NewStyle().Bold(true).Foreground(accentColor),
		notice:   r.NewStyle().Foreground(mutedColor),
		errStyle: r.NewStyle().Foreground(errorColor),
	}
}

// Styled reports whether output carries ANSI styling.
func (p *Printer) Styled() bool { return p.styled }

// Prompt writes the input prompt without a trailing newline.
func (p *Printer) Prompt(text string) {
	_, _ = fmt.Fprint(p.w, p.render(p.prompt, text))
}

// Result writes command output as-is.
func (p *Printer) Result(text string) {
	if text == "" {
		return
	}
	_, _ = fmt.Fprintln(p.w, text)
}

// Notice writes an informational line.
func (p *Printer) Notice(text string) {
	_, _ = fmt.Fprintln(p.w, p.render(p.notice, text))
}

// Error writes a failure line.
func (p *Printer) Error(text string) {
	_, _ = fmt.Fprintln(p.w, p.render(p.errStyle, text))
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// IsTTY reports whether w is connected to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
