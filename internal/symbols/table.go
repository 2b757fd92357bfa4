package symbols

import (
	"slices"
	"strings"

	"sealscan/internal/ast"
)

// Table maps fully-qualified classifier ids to their declarations across
// every tree of a scan. It is filled serially and read concurrently.
type Table struct {
	byID     map[ast.ClassID]Symbol
	packages map[string]struct{}
}

// NewTable returns a table preloaded with the builtin classifiers.
func NewTable() *Table {
	t := &Table{
		byID:     make(map[ast.ClassID]Symbol, 64),
		packages: make(map[string]struct{}, 8),
	}
	t.declareBuiltins()
	return t
}

// Declare adds sym. When the id is taken the existing symbol is returned with false.
func (t *Table) Declare(sym Symbol) (Symbol, bool) {
	if prev, ok := t.byID[sym.ID]; ok {
		return prev, false
	}
	t.byID[sym.ID] = sym
	t.packages[sym.ID.Package] = struct{}{}
	return sym, true
}

// Lookup returns the symbol registered for id.
func (t *Table) Lookup(id ast.ClassID) (Symbol, bool) {
	if id.IsZero() {
		return Symbol{}, false
	}
	sym, ok := t.byID[id]
	return sym, ok
}

// HasPackage reports whether any classifier was declared in pkg.
func (t *Table) HasPackage(pkg string) bool {
	_, ok := t.packages[pkg]
	return ok
}

func (t *Table) Len() int {
	return len(t.byID)
}

// IDs returns every source-declared id in a stable order.
func (t *Table) IDs() []ast.ClassID {
	out := make([]ast.ClassID, 0, len(t.byID))
	for id, sym := range t.byID {
		if sym.Kind == SymbolBuiltin {
			continue
		}
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b ast.ClassID) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}
