package symbols

import (
	"sealscan/internal/ast"
	"sealscan/internal/source"
)

// SymbolKind classifies what a classifier name denotes.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolClass
	SymbolAlias
	SymbolBuiltin
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolClass:
		return "class"
	case SymbolAlias:
		return "typealias"
	case SymbolBuiltin:
		return "builtin"
	default:
		return "invalid"
	}
}

// Symbol is one entry of the classifier table. Builtins have no Tree.
type Symbol struct {
	Kind SymbolKind
	ID   ast.ClassID
	Tree *ast.Builder
	Item ast.ItemID
	Unit ast.FileID
	Span source.Span
}

// Class returns the class payload behind s, if s is a source class.
func (s Symbol) Class() (*ast.ClassItem, bool) {
	if s.Kind != SymbolClass || s.Tree == nil {
		return nil, false
	}
	return s.Tree.Items.Class(s.Item)
}

// Alias returns the alias payload behind s, if s is a source alias.
func (s Symbol) Alias() (*ast.AliasItem, bool) {
	if s.Kind != SymbolAlias || s.Tree == nil {
		return nil, false
	}
	return s.Tree.Items.Alias(s.Item)
}
