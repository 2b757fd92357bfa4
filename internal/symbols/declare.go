package symbols

import (
	"fmt"

	"sealscan/internal/ast"
	"sealscan/internal/diag"
)

// Options configures declaration and resolution.
type Options struct {
	Reporter diag.Reporter
}

// DeclareFile registers every class and alias of file, nested ones included.
// It returns the number of new symbols.
func DeclareFile(t *Table, tree *ast.Builder, file ast.FileID, opts Options) int {
	f := tree.Files.Get(file)
	if f == nil {
		return 0
	}
	n := 0
	for _, id := range f.Items {
		n += declareItem(t, tree, file, id, opts)
	}
	return n
}

func declareItem(t *Table, tree *ast.Builder, file ast.FileID, id ast.ItemID, opts Options) int {
	item := tree.Items.Get(id)
	if item == nil {
		return 0
	}
	var sym Symbol
	switch item.Kind {
	case ast.ItemClass:
		cls, ok := tree.Items.Class(id)
		if !ok {
			return 0
		}
		sym = Symbol{Kind: SymbolClass, ID: cls.ID, Tree: tree, Item: id, Unit: file, Span: cls.NameSpan}
	case ast.ItemAlias:
		al, ok := tree.Items.Alias(id)
		if !ok {
			return 0
		}
		sym = Symbol{Kind: SymbolAlias, ID: al.ID, Tree: tree, Item: id, Unit: file, Span: al.NameSpan}
	default:
		return 0
	}

	n := 0
	if prev, ok := t.Declare(sym); ok {
		n++
	} else if opts.Reporter != nil {
		b := diag.ReportError(opts.Reporter, diag.SemaDuplicateSymbol, sym.Span,
			fmt.Sprintf("redeclaration of %s", sym.ID.FqName()))
		if prev.Kind != SymbolBuiltin {
			b.WithNote(prev.Span, "previously declared here")
		}
		b.Emit()
	}

	if item.Kind == ast.ItemClass {
		cls, _ := tree.Items.Class(id)
		for _, m := range cls.Members {
			n += declareItem(t, tree, file, m, opts)
		}
	}
	return n
}
