package sealed

import (
	"fmt"
	"slices"
	"strings"

	"sealscan/internal/ast"
	"sealscan/internal/trace"
)

// InjectStats counts the work done by one injection.
type InjectStats struct {
	Visits int
	Filled int
}

type injector struct {
	tree   *ast.Builder
	unit   ast.FileID
	acc    InheritorMap
	stats  InjectStats
	tracer trace.Tracer
	span   uint64
}

// Inject writes every list of acc onto its sealed class and empties acc.
// An empty acc returns immediately without touching the tree.
func Inject(tree *ast.Builder, unit ast.FileID, acc InheritorMap) (InjectStats, error) {
	return newInjector(tree, unit, acc, trace.Nop, 0).run()
}

func newInjector(tree *ast.Builder, unit ast.FileID, acc InheritorMap, t trace.Tracer, span uint64) *injector {
	return &injector{tree: tree, unit: unit, acc: acc, tracer: t, span: span}
}

func (in *injector) run() (InjectStats, error) {
	if len(in.acc) == 0 {
		return in.stats, nil
	}
	f := in.tree.Files.Get(in.unit)
	if f == nil {
		return in.stats, invariantf(in.unit, "unit has no file node")
	}
	for _, id := range f.Items {
		if err := in.visitItem(id); err != nil {
			return in.stats, err
		}
	}
	if len(in.acc) != 0 {
		return in.stats, invariantf(in.unit, "inheritors left unassigned for %s", in.leftovers())
	}
	return in.stats, nil
}

func (in *injector) visitItem(id ast.ItemID) error {
	if len(in.acc) == 0 {
		return nil
	}
	item := in.tree.Items.Get(id)
	if item == nil {
		return invariantf(in.unit, "dangling item %d", id)
	}
	in.stats.Visits++
	switch item.Kind {
	case ast.ItemClass:
		return in.visitClass(id)
	case ast.ItemAlias, ast.ItemFun, ast.ItemProperty:
		return nil
	default:
		return invariantf(in.unit, "unexpected %s node %d", item.Kind, id)
	}
}

func (in *injector) visitClass(id ast.ItemID) error {
	cls, ok := in.tree.Items.Class(id)
	if !ok {
		return invariantf(in.unit, "class item %d has no class payload", id)
	}
	for _, m := range cls.Members {
		if err := in.visitItem(m); err != nil {
			return err
		}
	}
	list, ok := in.acc[id]
	if !ok {
		return nil
	}
	delete(in.acc, id)
	cls.SetInheritors(list)
	in.stats.Filled++
	trace.Point(in.tracer, trace.ScopeNode, "inject", cls.ID.String(), in.span)
	return nil
}

func (in *injector) leftovers() string {
	names := make([]string, 0, len(in.acc))
	for id := range in.acc {
		if cls, ok := in.tree.Items.Class(id); ok {
			names = append(names, cls.ID.String())
		} else {
			names = append(names, fmt.Sprintf("item %d", id))
		}
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}
