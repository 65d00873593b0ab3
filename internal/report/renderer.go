package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/vk/aftersort/internal/fileid"
	"github.com/vk/aftersort/internal/project"
	"github.com/vk/aftersort/internal/resolver"
)

// Renderer prints human-readable outcomes.
type Renderer struct {
	out   io.Writer
	color bool

	okStyle    lipgloss.Style
	errStyle   lipgloss.Style
	warnStyle  lipgloss.Style
	nameStyle  lipgloss.Style
	trailStyle lipgloss.Style
}

// NewRenderer creates a Renderer writing to out. When color is false the
// output contains no escape sequences.
func NewRenderer(out io.Writer, color bool) *Renderer {
	lr := lipgloss.NewRenderer(out)
	if color {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:        out,
		color:      color,
		okStyle:    lr.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		errStyle:   lr.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		warnStyle:  lr.NewStyle().Foreground(lipgloss.Color("214")),
		nameStyle:  lr.NewStyle().Bold(true),
		trailStyle: lr.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// Render prints one project outcome.
func (r *Renderer) Render(o project.Outcome) {
	name := r.paint(r.nameStyle, o.Project.Name)
	errs := o.Result.Errors
	count := len(errs)
	if o.ManifestErr != nil {
		count++
	}

	if count == 0 {
		fmt.Fprintf(r.out, "%s %s: %d files\n", r.paint(r.okStyle, "ok"), name, len(o.Result.Order))
	} else {
		fmt.Fprintf(r.out, "%s %s: %d %s\n", r.paint(r.errStyle, "failed"), name, count, plural(count, "error", "errors"))
	}

	for _, err := range errs {
		fmt.Fprintf(r.out, "  %s\n", r.describe(o.Canon, err))
	}
	if o.ManifestErr != nil {
		fmt.Fprintf(r.out, "  %s %v\n", r.paint(r.errStyle, "manifest not written:"), o.ManifestErr)
	}
	for _, orphan := range o.Orphans {
		fmt.Fprintf(r.out, "  %s %s is not reachable from the entry point\n", r.paint(r.warnStyle, "orphan:"), relative(o.Canon, orphan))
	}
}

// Summary prints the closing line for a run.
func (r *Renderer) Summary(outcomes []project.Outcome) {
	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	line := fmt.Sprintf("%d %s resolved, %d failed", len(outcomes), plural(len(outcomes), "project", "projects"), failed)
	if failed > 0 {
		fmt.Fprintln(r.out, r.paint(r.errStyle, line))
		return
	}
	fmt.Fprintln(r.out, r.paint(r.okStyle, line))
}

func (r *Renderer) describe(canon *fileid.Canonicalizer, err resolver.Error) string {
	switch e := err.(type) {
	case *resolver.EntryPointNotFound:
		return fmt.Sprintf("%s %s", r.paint(r.errStyle, "no entry point:"), e.Error())
	case *resolver.NotFound:
		msg := fmt.Sprintf("%s %s", r.paint(r.errStyle, "not found:"), relative(canon, e.File))
		if e.HasImporter() {
			msg += fmt.Sprintf(" (referenced by %s)", relative(canon, e.Importer))
		}
		return msg
	case *resolver.Cycle:
		trail := ""
		for i, p := range e.Path {
			if i > 0 {
				trail += " -> "
			}
			trail += relative(canon, p)
		}
		return fmt.Sprintf("%s %s", r.paint(r.errStyle, "cycle:"), r.paint(r.trailStyle, trail))
	default:
		panic(fmt.Sprintf("report: unknown error variant %T", err))
	}
}

func relative(canon *fileid.Canonicalizer, id fileid.Identity) string {
	if canon == nil {
		return string(id)
	}
	return canon.Relative(id)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
