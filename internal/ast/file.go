package ast

import (
	"sealscan/internal/source"
)

// Import is one `import a.b.C [as D]` or `import a.b.*` directive.
type Import struct {
	Path  []source.StringID
	Alias source.StringID
	Star  bool
	Span  source.Span
}

// File is the root of one compilation unit.
type File struct {
	Source  source.FileID
	Span    source.Span
	Package []source.StringID
	Imports []Import
	Items   []ItemID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(src source.FileID, sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Source: src, Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
