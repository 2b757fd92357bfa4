package ast

import (
	"sealscan/internal/source"
)

// TypeRefKind records what name resolution decided a reference denotes.
type TypeRefKind uint8

const (
	TypeRefUnresolved TypeRefKind = iota
	TypeRefClassifier             // Lookup names a class, alias or builtin classifier
	TypeRefTypeParam              // a type parameter in scope; never a classifier
	TypeRefFunction               // function type `(A) -> B`
)

// TypeRef is a written type such as `a.b.Base<T>?`. Segments hold the dotted
// path as spelled; Lookup is filled in by name resolution.
type TypeRef struct {
	Segments []source.StringID
	Args     []TypeRefID
	Nullable bool
	Span     source.Span

	Kind   TypeRefKind
	Lookup ClassID
}

type TypeRefs struct {
	Arena *Arena[TypeRef]
}

func NewTypeRefs(capHint uint) *TypeRefs {
	return &TypeRefs{Arena: NewArena[TypeRef](capHint)}
}

func (t *TypeRefs) New(ref TypeRef) TypeRefID {
	return TypeRefID(t.Arena.Allocate(ref))
}

func (t *TypeRefs) Get(id TypeRefID) *TypeRef {
	return t.Arena.Get(uint32(id))
}
