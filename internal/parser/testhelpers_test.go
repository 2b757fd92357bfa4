package parser

import (
	"fmt"
	"strings"
	"testing"

	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/lexer"
	"sealscan/internal/source"
)

func parseSnippet(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kt", []byte(src))
	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(lx, b, Options{Reporter: reporter})
	return b, res.File, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil || bag.Len() == 0 {
		return "<none>"
	}
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

func mustClass(t *testing.T, b *ast.Builder, id ast.ItemID) *ast.ClassItem {
	t.Helper()
	cls, ok := b.Items.Class(id)
	if !ok {
		t.Fatalf("item %d is not a class (kind %v)", id, b.Items.Get(id).Kind)
	}
	return cls
}

func superNames(b *ast.Builder, cls *ast.ClassItem) []string {
	out := make([]string, len(cls.Supertypes))
	for i, ref := range cls.Supertypes {
		out[i] = b.JoinPath(b.TypeRefs.Get(ref).Segments)
	}
	return out
}
