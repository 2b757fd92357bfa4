package sealed

import (
	"sealscan/internal/ast"
	"sealscan/internal/trace"
)

// InheritorMap maps a sealed class node to its direct inheritors in
// discovery order. It is owned by a single pass over one unit.
type InheritorMap map[ast.ItemID][]ast.ClassID

type collector struct {
	tree     *ast.Builder
	unit     ast.FileID
	resolver *resolver
	acc      InheritorMap
	tracer   trace.Tracer
	span     uint64
}

// Collect gathers the inheritors of every sealed class declared in unit.
func Collect(tree *ast.Builder, unit ast.FileID, lookup SymbolLookup, opts Options) (InheritorMap, error) {
	return newCollector(tree, unit, lookup, opts, trace.Nop, 0).run()
}

func newCollector(tree *ast.Builder, unit ast.FileID, lookup SymbolLookup, opts Options, t trace.Tracer, span uint64) *collector {
	return &collector{
		tree:     tree,
		unit:     unit,
		resolver: newResolver(lookup, opts.MaxAliasDepth),
		acc:      make(InheritorMap),
		tracer:   t,
		span:     span,
	}
}

func (c *collector) run() (InheritorMap, error) {
	if err := c.visitFile(); err != nil {
		return nil, err
	}
	return c.acc, nil
}

func (c *collector) visitFile() error {
	f := c.tree.Files.Get(c.unit)
	if f == nil {
		return invariantf(c.unit, "unit has no file node")
	}
	for _, id := range f.Items {
		if err := c.visitItem(id); err != nil {
			return err
		}
	}
	return nil
}

func (c *collector) visitItem(id ast.ItemID) error {
	item := c.tree.Items.Get(id)
	if item == nil {
		return invariantf(c.unit, "dangling item %d", id)
	}
	switch item.Kind {
	case ast.ItemClass:
		return c.visitClass(id)
	case ast.ItemAlias, ast.ItemFun, ast.ItemProperty:
		return nil
	default:
		// opaque to the collector; the injector rejects it
		return nil
	}
}

func (c *collector) visitClass(id ast.ItemID) error {
	cls, ok := c.tree.Items.Class(id)
	if !ok {
		return invariantf(c.unit, "class item %d has no class payload", id)
	}
	for _, m := range cls.Members {
		if err := c.visitItem(m); err != nil {
			return err
		}
	}
	for _, ref := range cls.Supertypes {
		target, err := c.resolver.resolveClass(c.tree, ref)
		if err != nil {
			return err
		}
		if target == nil || !target.class.IsSealed() {
			continue
		}
		// sealed classes of other units are filled when that unit is processed
		if target.tree != c.tree || target.unit != c.unit {
			continue
		}
		c.acc[target.item] = append(c.acc[target.item], cls.ID)
		trace.Point(c.tracer, trace.ScopeNode, "inheritor", cls.ID.String()+" -> "+target.class.ID.String(), c.span)
	}
	return nil
}
