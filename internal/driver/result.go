package driver

import (
	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/observ"
	"sealscan/internal/sealed"
	"sealscan/internal/source"
)

// SealedClass is one sealed class of a file with its computed inheritors.
type SealedClass struct {
	ID         string   `json:"id" msgpack:"id"`
	Kind       string   `json:"kind" msgpack:"kind"`
	Line       uint32   `json:"line" msgpack:"line"`
	Col        uint32   `json:"col" msgpack:"col"`
	Inheritors []string `json:"inheritors" msgpack:"inheritors"`
}

// Diagnostic is a diagnostic with its position already resolved, so it
// survives the disk cache without the FileSet.
type Diagnostic struct {
	Code     string `json:"code" msgpack:"code"`
	Severity string `json:"severity" msgpack:"severity"`
	Message  string `json:"message" msgpack:"message"`
	Line     uint32 `json:"line" msgpack:"line"`
	Col      uint32 `json:"col" msgpack:"col"`
	Error    bool   `json:"-" msgpack:"error"`
}

// FileResult is everything a scan produced for one file.
type FileResult struct {
	Path        string         `json:"path" msgpack:"path"`
	Sealed      []SealedClass  `json:"sealed" msgpack:"sealed"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty" msgpack:"diagnostics"`
	Stats       sealed.Stats   `json:"stats" msgpack:"stats"`
	Err         string         `json:"error,omitempty" msgpack:"err"`
	Cached      bool           `json:"cached,omitempty" msgpack:"-"`
	Timing      *observ.Report `json:"timing,omitempty" msgpack:"-"`
}

// Failed reports whether the sealed pass aborted on this file.
func (r *FileResult) Failed() bool {
	return r.Err != ""
}

func (r *FileResult) HasErrors() bool {
	if r.Failed() {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Error {
			return true
		}
	}
	return false
}

// InheritorCount sums the inheritors over every sealed class of the file.
func (r *FileResult) InheritorCount() int {
	n := 0
	for _, sc := range r.Sealed {
		n += len(sc.Inheritors)
	}
	return n
}

// Result is the outcome of Scan.
type Result struct {
	Root   string        `json:"root"`
	Files  []FileResult  `json:"files"`
	Timing observ.Report `json:"timing,omitzero"`
}

func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].HasErrors() {
			return true
		}
	}
	return false
}

// SealedCount is the number of sealed classes across all files.
func (r *Result) SealedCount() int {
	n := 0
	for i := range r.Files {
		n += len(r.Files[i].Sealed)
	}
	return n
}

func convertDiagnostics(fs *source.FileSet, bag *diag.Bag) []Diagnostic {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	bag.Dedup()
	out := make([]Diagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		var start source.LineCol
		if fs != nil {
			start, _ = fs.Resolve(d.Primary)
		}
		out = append(out, Diagnostic{
			Code:     d.Code.ID(),
			Severity: d.Severity.String(),
			Message:  d.Message,
			Line:     start.Line,
			Col:      start.Col,
			Error:    d.Severity == diag.SevError,
		})
	}
	return out
}

// sealedClasses lists the sealed classes of unit in source order, outer
// classes before their members.
func sealedClasses(fs *source.FileSet, tree *ast.Builder, unit ast.FileID) []SealedClass {
	f := tree.Files.Get(unit)
	if f == nil {
		return nil
	}
	var out []SealedClass
	var walk func(id ast.ItemID)
	walk = func(id ast.ItemID) {
		cls, ok := tree.Items.Class(id)
		if !ok {
			return
		}
		if cls.IsSealed() {
			start, _ := fs.Resolve(cls.NameSpan)
			sc := SealedClass{
				ID:         cls.ID.String(),
				Kind:       cls.Kind.String(),
				Line:       start.Line,
				Col:        start.Col,
				Inheritors: make([]string, len(cls.Inheritors)),
			}
			for i, inh := range cls.Inheritors {
				sc.Inheritors[i] = inh.String()
			}
			out = append(out, sc)
		}
		for _, m := range cls.Members {
			walk(m)
		}
	}
	for _, id := range f.Items {
		walk(id)
	}
	return out
}
