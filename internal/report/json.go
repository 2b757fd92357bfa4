package report

import (
	"encoding/json"
	"io"

	"sealscan/internal/driver"
	"sealscan/internal/observ"
)

type summaryJSON struct {
	Files  int `json:"files"`
	Sealed int `json:"sealed"`
	Failed int `json:"failed"`
	Cached int `json:"cached"`
}

type resultJSON struct {
	Root    string              `json:"root"`
	Files   []driver.FileResult `json:"files"`
	Summary summaryJSON         `json:"summary"`
	Timing  *observ.Report      `json:"timing,omitempty"`
}

func writeJSON(w io.Writer, res *driver.Result, opts Options) error {
	out := resultJSON{
		Root:    res.Root,
		Files:   make([]driver.FileResult, 0, len(res.Files)),
		Summary: summarize(res),
	}
	for _, f := range res.Files {
		if opts.Quiet && !f.HasErrors() {
			continue
		}
		if !opts.WithDiagnostics {
			f.Diagnostics = nil
		} else if opts.MaxDiagnostics > 0 && len(f.Diagnostics) > opts.MaxDiagnostics {
			f.Diagnostics = f.Diagnostics[:opts.MaxDiagnostics]
		}
		if !opts.Timings {
			f.Timing = nil
		}
		out.Files = append(out.Files, f)
	}
	if opts.Timings {
		timing := res.Timing
		out.Timing = &timing
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func summarize(res *driver.Result) summaryJSON {
	s := summaryJSON{Files: len(res.Files), Sealed: res.SealedCount()}
	for i := range res.Files {
		if res.Files[i].Failed() {
			s.Failed++
		}
		if res.Files[i].Cached {
			s.Cached++
		}
	}
	return s
}
