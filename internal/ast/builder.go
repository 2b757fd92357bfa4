package ast

import (
	"strings"

	"sealscan/internal/source"
)

type Hints struct{ Files, Items, TypeRefs uint }

// Builder owns the arenas of one declaration tree and the interner its names live in.
type Builder struct {
	Files    *Files
	Items    *Items
	TypeRefs *TypeRefs
	Strings  *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.TypeRefs == 0 {
		hints.TypeRefs = 1 << 7
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:    NewFiles(hints.Files),
		Items:    NewItems(hints.Items),
		TypeRefs: NewTypeRefs(hints.TypeRefs),
		Strings:  strings,
	}
}

func (b *Builder) NewFile(src source.FileID, sp source.Span) FileID {
	return b.Files.New(src, sp)
}

// PushItem appends a top-level declaration to file.
func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// PushMember appends a nested declaration to the class owning parent.
func (b *Builder) PushMember(parent, item ItemID) bool {
	cls, ok := b.Items.Class(parent)
	if !ok {
		return false
	}
	cls.Members = append(cls.Members, item)
	return true
}

// Name returns the interned spelling of id, or "" when unknown.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// JoinPath renders interned segments as a dotted path.
func (b *Builder) JoinPath(segs []source.StringID) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = b.Name(s)
	}
	return strings.Join(parts, ".")
}

// PackageName returns the dotted package of file.
func (b *Builder) PackageName(file FileID) string {
	f := b.Files.Get(file)
	if f == nil {
		return ""
	}
	return b.JoinPath(f.Package)
}
