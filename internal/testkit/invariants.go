package testkit

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"sealscan/internal/ast"
	"sealscan/internal/sealed"
	"sealscan/internal/source"
	"sealscan/internal/symbols"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within the content bounds of sf
// 2) every item span, nested ones included, is non-empty and inside file.Span
// 3) every member span is inside its container's span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.End < f.Span.Start {
		return fmt.Errorf("file span %v outside content of length %d", f.Span, lenContent)
	}
	for _, id := range f.Items {
		if err := checkItemSpan(b, id, f.Span, sf.ID); err != nil {
			return err
		}
	}
	return nil
}

func checkItemSpan(b *ast.Builder, id ast.ItemID, outer source.Span, file source.FileID) error {
	item := b.Items.Get(id)
	if item == nil {
		return fmt.Errorf("nil item for id=%d", id)
	}
	sp := item.Span
	if sp.End <= sp.Start {
		return fmt.Errorf("empty item span: %v", sp)
	}
	if sp.File != file {
		return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, file)
	}
	if !outer.Contains(sp) {
		return fmt.Errorf("item span %v is outside enclosing span %v", sp, outer)
	}
	cls, ok := b.Items.Class(id)
	if !ok {
		return nil
	}
	for _, m := range cls.Members {
		if err := checkItemSpan(b, m, sp, file); err != nil {
			return err
		}
	}
	return nil
}

// Lookup is the symbol lookup the inheritor check resolves supertypes with.
type Lookup interface {
	Lookup(id ast.ClassID) (symbols.Symbol, bool)
}

// CheckInheritors recomputes the expected inheritors of every class in unit
// straight from supertype references and compares them with what the pass
// stored: sealed classes must hold exactly their same-unit direct
// subclasses in members-first order, every other class must be untouched.
// maxAliasDepth is the limit the pass ran with; zero means the pass default.
func CheckInheritors(b *ast.Builder, unit ast.FileID, lookup Lookup, maxAliasDepth int) error {
	if maxAliasDepth <= 0 {
		maxAliasDepth = sealed.DefaultMaxAliasDepth
	}
	f := b.Files.Get(unit)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	expected := make(map[ast.ItemID][]ast.ClassID)
	var walk func(id ast.ItemID) error
	walk = func(id ast.ItemID) error {
		cls, ok := b.Items.Class(id)
		if !ok {
			return nil
		}
		for _, m := range cls.Members {
			if err := walk(m); err != nil {
				return err
			}
		}
		for _, ref := range cls.Supertypes {
			sym, ok, err := classSymbol(b, ref, lookup, maxAliasDepth)
			if err != nil {
				return fmt.Errorf("%s: %w", cls.ID, err)
			}
			if !ok || sym.Tree != b || sym.Unit != unit {
				continue
			}
			if target, _ := sym.Class(); target.IsSealed() {
				expected[sym.Item] = append(expected[sym.Item], cls.ID)
			}
		}
		return nil
	}
	for _, id := range f.Items {
		if err := walk(id); err != nil {
			return err
		}
	}

	var check func(id ast.ItemID) error
	check = func(id ast.ItemID) error {
		cls, ok := b.Items.Class(id)
		if !ok {
			return nil
		}
		for _, m := range cls.Members {
			if err := check(m); err != nil {
				return err
			}
		}
		want, sealedWithKids := expected[id]
		switch {
		case !cls.IsSealed() && (cls.InheritorsSet || len(cls.Inheritors) > 0):
			return fmt.Errorf("%s: non-sealed class carries inheritors %v", cls.ID, cls.Inheritors)
		case sealedWithKids && !cls.InheritorsSet:
			return fmt.Errorf("%s: inheritors never set, want %v", cls.ID, want)
		case !slices.Equal(cls.Inheritors, want):
			return fmt.Errorf("%s: inheritors = %v, want %v", cls.ID, cls.Inheritors, want)
		}
		return nil
	}
	for _, id := range f.Items {
		if err := check(id); err != nil {
			return err
		}
	}
	return nil
}

func classSymbol(b *ast.Builder, refID ast.TypeRefID, lookup Lookup, maxHops int) (symbols.Symbol, bool, error) {
	tree := b
	for hop := 0; hop <= maxHops; hop++ {
		ref := tree.TypeRefs.Get(refID)
		if ref == nil || ref.Kind != ast.TypeRefClassifier {
			return symbols.Symbol{}, false, nil
		}
		sym, ok := lookup.Lookup(ref.Lookup)
		if !ok {
			return symbols.Symbol{}, false, nil
		}
		switch sym.Kind {
		case symbols.SymbolClass:
			return sym, true, nil
		case symbols.SymbolAlias:
			al, ok := sym.Alias()
			if !ok {
				return symbols.Symbol{}, false, nil
			}
			tree, refID = sym.Tree, al.Target
		default:
			return symbols.Symbol{}, false, nil
		}
	}
	return symbols.Symbol{}, false, fmt.Errorf("alias chain longer than %d", maxHops)
}
