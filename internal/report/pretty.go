package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"sealscan/internal/driver"
)

type palette struct {
	path    *color.Color
	class   *color.Color
	child   *color.Color
	dim     *color.Color
	err     *color.Color
	warning *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		class:   color.New(color.FgCyan, color.Bold),
		child:   color.New(color.FgGreen),
		dim:     color.New(color.Faint),
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.path, p.class, p.child, p.dim, p.err, p.warning} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// writePretty prints each file, its sealed classes as a tree and, on
// request, its diagnostics:
//
//	zoo/Animal.kt
//	  sealed class zoo/Animal  3:14
//	    ├─ zoo/Animal.Dog
//	    └─ zoo/Cat
func writePretty(w io.Writer, res *driver.Result, opts Options) error {
	p := newPalette(opts.Color)
	var sb strings.Builder
	for i := range res.Files {
		f := &res.Files[i]
		if opts.Quiet && !f.HasErrors() {
			continue
		}
		if len(f.Sealed) == 0 && !f.Failed() && !(opts.WithDiagnostics && len(f.Diagnostics) > 0) {
			continue
		}
		sb.WriteString(p.path.Sprint(f.Path))
		if f.Cached {
			sb.WriteString(p.dim.Sprint(" (cached)"))
		}
		sb.WriteByte('\n')
		if f.Failed() {
			fmt.Fprintf(&sb, "  %s %s\n", p.err.Sprint("error:"), f.Err)
		}
		if !opts.Quiet {
			for _, sc := range f.Sealed {
				writeSealed(&sb, p, sc)
			}
		}
		if opts.WithDiagnostics {
			writeDiagnostics(&sb, p, f, opts.MaxDiagnostics)
		}
	}
	if !opts.Quiet {
		s := summarize(res)
		fmt.Fprintf(&sb, "%d files, %d sealed classes", s.Files, s.Sealed)
		if s.Cached > 0 {
			fmt.Fprintf(&sb, ", %d cached", s.Cached)
		}
		if s.Failed > 0 {
			sb.WriteString(", " + p.err.Sprintf("%d failed", s.Failed))
		}
		sb.WriteByte('\n')
	}
	if opts.Timings {
		writeTimings(&sb, res)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSealed(sb *strings.Builder, p palette, sc driver.SealedClass) {
	fmt.Fprintf(sb, "  sealed %s %s  %s\n", sc.Kind, p.class.Sprint(sc.ID), p.dim.Sprintf("%d:%d", sc.Line, sc.Col))
	if len(sc.Inheritors) == 0 {
		fmt.Fprintf(sb, "    %s\n", p.dim.Sprint("(no inheritors)"))
		return
	}
	for i, inh := range sc.Inheritors {
		branch := "├─"
		if i == len(sc.Inheritors)-1 {
			branch = "└─"
		}
		fmt.Fprintf(sb, "    %s %s\n", p.dim.Sprint(branch), p.child.Sprint(inh))
	}
}

func writeDiagnostics(sb *strings.Builder, p palette, f *driver.FileResult, limit int) {
	for i, d := range f.Diagnostics {
		if limit > 0 && i >= limit {
			fmt.Fprintf(sb, "  %s\n", p.dim.Sprintf("... %d more", len(f.Diagnostics)-limit))
			return
		}
		sev := p.warning.Sprint(strings.ToLower(d.Severity))
		if d.Error {
			sev = p.err.Sprint(strings.ToLower(d.Severity))
		}
		fmt.Fprintf(sb, "  %s:%d:%d: %s %s: %s\n", f.Path, d.Line, d.Col, sev, d.Code, d.Message)
	}
}

func writeTimings(sb *strings.Builder, res *driver.Result) {
	sb.WriteString("timings:\n")
	for _, ph := range res.Timing.Phases {
		fmt.Fprintf(sb, "  %-12s %9.2f ms", ph.Name, ph.DurationMS)
		if ph.Note != "" {
			sb.WriteString("  // " + ph.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(sb, "  %-12s %9.2f ms\n", "total", res.Timing.TotalMS)
}
