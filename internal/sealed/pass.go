package sealed

import (
	"context"
	"strconv"

	"sealscan/internal/ast"
	"sealscan/internal/trace"
)

// Options tunes the pass.
type Options struct {
	// MaxAliasDepth bounds alias expansion; 0 selects DefaultMaxAliasDepth.
	MaxAliasDepth int
}

// Stats summarises one ProcessUnit call.
type Stats struct {
	SealedClasses  int // sealed classes with at least one inheritor
	Inheritors     int // total recorded inheritor entries
	InjectorVisits int
	Filled         int
}

// ProcessUnit runs the collector and the injector over unit. On success
// every sealed class of unit that has same-unit subclasses carries them in
// its Inheritors list. Errors are *InvariantError or *AliasCycleError and
// leave the unit partially processed.
func ProcessUnit(ctx context.Context, tree *ast.Builder, unit ast.FileID, lookup SymbolLookup, opts Options) (Stats, error) {
	var stats Stats
	tracer := trace.FromContext(ctx)
	ctx, span := trace.StartSpan(ctx, trace.ScopeModule, "sealed_inheritors")
	parent := trace.ParentSpan(ctx)

	acc, err := newCollector(tree, unit, lookup, opts, tracer, parent).run()
	if err != nil {
		span.End(err.Error())
		return stats, err
	}
	stats.SealedClasses = len(acc)
	for _, list := range acc {
		stats.Inheritors += len(list)
	}

	injected, err := newInjector(tree, unit, acc, tracer, parent).run()
	stats.InjectorVisits = injected.Visits
	stats.Filled = injected.Filled
	if err != nil {
		span.End(err.Error())
		return stats, err
	}

	span.WithExtra("sealed", strconv.Itoa(stats.SealedClasses)).
		WithExtra("visits", strconv.Itoa(stats.InjectorVisits)).
		End("")
	return stats, nil
}
