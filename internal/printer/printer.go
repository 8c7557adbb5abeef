// Package printer writes human-facing status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/bizfindr/bizfindr/internal/core/styles"
)

type ctxKey struct{}

// Printer writes styled status lines. Colors are downsampled to what the
// writer supports.
type Printer struct {
	out io.Writer
}

// New creates a printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.BannerIcon("info"), styles.TextMutedStyle, format, args...)
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.BannerIcon("success"), styles.TextSuccessStyle, format, args...)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.BannerIcon("warning"), lipgloss.NewStyle().Foreground(styles.CurrentPalette.Warning), format, args...)
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.BannerIcon("danger"), styles.TextErrorStyle, format, args...)
}

// Severityf writes a line styled for a banner severity. Unknown severities
// print as info.
func (p *Printer) Severityf(severity, format string, args ...any) {
	switch severity {
	case "success":
		p.Successf(format, args...)
	case "warning":
		p.Warnf(format, args...)
	case "danger":
		p.Errorf(format, args...)
	default:
		p.Infof(format, args...)
	}
}

func (p *Printer) line(icon string, style lipgloss.Style, format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.out, style.Render(icon)+" "+fmt.Sprintf(format, args...))
}
