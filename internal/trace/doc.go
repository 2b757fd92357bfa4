// Package trace records scan, pass and per-file spans for sealscan.
//
// A Tracer travels through the pipeline inside a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// Implementations:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last N events for post-mortem dumps
//   - MultiTracer: fans events out to several tracers
//
// Verbosity is controlled by Level; each event carries a Scope
// (driver, pass, module, node) that the level filters on.
package trace
