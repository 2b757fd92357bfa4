package testkit

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/lexer"
	"sealscan/internal/parser"
	"sealscan/internal/sealed"
	"sealscan/internal/source"
	"sealscan/internal/symbols"
)

const hierarchy = `package shapes

sealed class Shape {
    class Circle(val r: Double) : Shape()
    sealed interface Polygon
}
class Square : Shape(), Shape.Polygon
typealias Poly = Shape.Polygon
object Triangle : Poly
open class Plain
class Sub : Plain()
`

func setup(t *testing.T) (*ast.Builder, ast.FileID, *source.File, *symbols.Table) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("shapes.kt", []byte(hierarchy))
	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}
	tree := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(fs.Get(id), lexer.Options{Reporter: reporter}), tree, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse: %v", bag.Items())
	}
	table := symbols.NewTable()
	symbols.DeclareFile(table, tree, res.File, symbols.Options{})
	symbols.ResolveFile(table, tree, res.File, symbols.Options{})
	return tree, res.File, fs.Get(id), table
}

func TestCheckSpanInvariants(t *testing.T) {
	tree, file, sf, _ := setup(t)
	if err := CheckSpanInvariants(tree, file, sf); err != nil {
		t.Fatal(err)
	}
}

func TestCheckInheritorsAcceptsPassOutput(t *testing.T) {
	tree, file, _, table := setup(t)
	if _, err := sealed.ProcessUnit(context.Background(), tree, file, table, sealed.Options{}); err != nil {
		t.Fatal(err)
	}
	if err := CheckInheritors(tree, file, table, 0); err != nil {
		t.Fatal(err)
	}
}

func TestCheckInheritorsDetectsTampering(t *testing.T) {
	tree, file, _, table := setup(t)
	if _, err := sealed.ProcessUnit(context.Background(), tree, file, table, sealed.Options{}); err != nil {
		t.Fatal(err)
	}

	sym, _ := table.Lookup(ast.NewClassID("shapes", "Shape"))
	shape, _ := sym.Class()
	saved := shape.Inheritors
	shape.Inheritors = []ast.ClassID{saved[1], saved[0]}
	if err := CheckInheritors(tree, file, table, 0); err == nil || !strings.Contains(err.Error(), "shapes/Shape") {
		t.Fatalf("reordered list accepted: %v", err)
	}
	shape.Inheritors = saved

	sym, _ = table.Lookup(ast.NewClassID("shapes", "Plain"))
	plain, _ := sym.Class()
	plain.SetInheritors([]ast.ClassID{ast.NewClassID("shapes", "Sub")})
	if err := CheckInheritors(tree, file, table, 0); err == nil || !strings.Contains(err.Error(), "non-sealed") {
		t.Fatalf("non-sealed inheritors accepted: %v", err)
	}
}

func TestCheckInheritorsHonoursAliasDepth(t *testing.T) {
	const chain = 70
	var src strings.Builder
	src.WriteString("package deep\nsealed class Root\ntypealias A0 = Root\n")
	for i := 1; i < chain; i++ {
		fmt.Fprintf(&src, "typealias A%d = A%d\n", i, i-1)
	}
	fmt.Fprintf(&src, "class Leaf : A%d()\n", chain-1)

	fs := source.NewFileSet()
	id := fs.AddVirtual("deep.kt", []byte(src.String()))
	tree := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(fs.Get(id), lexer.Options{}), tree, parser.Options{})
	table := symbols.NewTable()
	symbols.DeclareFile(table, tree, res.File, symbols.Options{})
	symbols.ResolveFile(table, tree, res.File, symbols.Options{})

	if _, err := sealed.ProcessUnit(context.Background(), tree, res.File, table, sealed.Options{MaxAliasDepth: 100}); err != nil {
		t.Fatalf("pass with depth 100: %v", err)
	}
	if err := CheckInheritors(tree, res.File, table, 100); err != nil {
		t.Fatalf("check with depth 100: %v", err)
	}
	if err := CheckInheritors(tree, res.File, table, 0); err == nil || !strings.Contains(err.Error(), "alias chain longer than 64") {
		t.Fatalf("default depth accepted a %d-alias chain: %v", chain, err)
	}
}
