package sealed

import (
	"slices"

	"sealscan/internal/ast"
	"sealscan/internal/symbols"
)

// DefaultMaxAliasDepth bounds alias expansion when Options leaves it unset.
const DefaultMaxAliasDepth = 64

// SymbolLookup answers which declaration a resolved reference denotes.
type SymbolLookup interface {
	Lookup(id ast.ClassID) (symbols.Symbol, bool)
}

// classTarget is a class declaration reached from a type reference.
type classTarget struct {
	tree  *ast.Builder
	item  ast.ItemID
	unit  ast.FileID
	class *ast.ClassItem
}

type resolver struct {
	lookup   SymbolLookup
	maxDepth int
}

func newResolver(lookup SymbolLookup, maxDepth int) *resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxAliasDepth
	}
	return &resolver{lookup: lookup, maxDepth: maxDepth}
}

// resolveClass returns the class ref denotes, unwinding aliases. A nil
// target with a nil error means the reference does not reach a source class.
func (r *resolver) resolveClass(tree *ast.Builder, ref ast.TypeRefID) (*classTarget, error) {
	return r.resolve(tree, ref, nil)
}

func (r *resolver) resolve(tree *ast.Builder, refID ast.TypeRefID, chain []ast.ClassID) (*classTarget, error) {
	ref := tree.TypeRefs.Get(refID)
	if ref == nil || ref.Kind != ast.TypeRefClassifier || ref.Lookup.IsZero() {
		return nil, nil
	}
	sym, ok := r.lookup.Lookup(ref.Lookup)
	if !ok {
		return nil, nil
	}
	switch sym.Kind {
	case symbols.SymbolClass:
		cls, ok := sym.Class()
		if !ok {
			return nil, nil
		}
		return &classTarget{tree: sym.Tree, item: sym.Item, unit: sym.Unit, class: cls}, nil
	case symbols.SymbolAlias:
		if slices.Contains(chain, sym.ID) {
			return nil, &AliasCycleError{Chain: append(chain, sym.ID)}
		}
		if len(chain) >= r.maxDepth {
			return nil, &AliasCycleError{Chain: append(chain, sym.ID), Limit: r.maxDepth}
		}
		al, ok := sym.Alias()
		if !ok {
			return nil, nil
		}
		return r.resolve(sym.Tree, al.Target, append(chain, sym.ID))
	default:
		return nil, nil
	}
}
