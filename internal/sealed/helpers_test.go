package sealed

import (
	"fmt"
	"testing"

	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/lexer"
	"sealscan/internal/parser"
	"sealscan/internal/source"
	"sealscan/internal/symbols"
)

type testUnit struct {
	tree *ast.Builder
	file ast.FileID
}

// buildUnits parses every source into its own tree and resolves them
// against one shared table.
func buildUnits(t *testing.T, sources ...string) (*symbols.Table, []testUnit) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	units := make([]testUnit, 0, len(sources))
	for i, src := range sources {
		id := fs.AddVirtual(fmt.Sprintf("unit%d.kt", i), []byte(src))
		tree := ast.NewBuilder(ast.Hints{}, nil)
		lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
		res := parser.ParseFile(lx, tree, parser.Options{Reporter: reporter})
		units = append(units, testUnit{tree: tree, file: res.File})
	}
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	table := symbols.NewTable()
	for _, u := range units {
		symbols.DeclareFile(table, u.tree, u.file, symbols.Options{Reporter: reporter})
	}
	for _, u := range units {
		symbols.ResolveFile(table, u.tree, u.file, symbols.Options{Reporter: reporter})
	}
	return table, units
}

func classOf(t *testing.T, table *symbols.Table, id string) (*ast.ClassItem, symbols.Symbol) {
	t.Helper()
	sym, ok := table.Lookup(ast.ParseClassID(id))
	if !ok {
		t.Fatalf("class %s not declared", id)
	}
	cls, ok := sym.Class()
	if !ok {
		t.Fatalf("%s is a %s", id, sym.Kind)
	}
	return cls, sym
}

func inheritorNames(cls *ast.ClassItem) []string {
	out := make([]string, len(cls.Inheritors))
	for i, id := range cls.Inheritors {
		out[i] = id.String()
	}
	return out
}

func expectInheritors(t *testing.T, table *symbols.Table, id string, want ...string) {
	t.Helper()
	cls, _ := classOf(t, table, id)
	if !cls.InheritorsSet {
		t.Fatalf("%s: inheritors were never set", id)
	}
	got := inheritorNames(cls)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("%s inheritors = %v, want %v", id, got, want)
	}
}

func expectUntouched(t *testing.T, table *symbols.Table, id string) {
	t.Helper()
	cls, _ := classOf(t, table, id)
	if cls.InheritorsSet || len(cls.Inheritors) != 0 {
		t.Fatalf("%s: inheritors = %v (set=%v), want untouched", id, inheritorNames(cls), cls.InheritorsSet)
	}
}
