// Package printer writes styled status lines for command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#65EAB9")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0AF68")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7768E")).Bold(true)
)

// Printer writes human readable messages. Status lines go to out, errors and
// warnings to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New creates a Printer.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

type ctxKey struct{}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stdout and stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout, os.Stderr)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, successStyle, "✔", format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, infoStyle, "•", format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.errOut, warnStyle, "!", format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.errOut, errorStyle, "✘", format, args...)
}

func (p *Printer) line(w io.Writer, style lipgloss.Style, icon, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}
