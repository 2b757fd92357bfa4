package trace

import "context"

// frame is what a context carries for tracing: the tracer and the span that
// new spans hang under.
type frame struct {
	tracer Tracer
	parent uint64
}

type frameKey struct{}

func frameOf(ctx context.Context) frame {
	if ctx != nil {
		if f, ok := ctx.Value(frameKey{}).(frame); ok {
			return f
		}
	}
	return frame{tracer: Nop}
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return frameOf(ctx).tracer
}

// WithTracer installs t as the root of a new span tree.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, frameKey{}, frame{tracer: t})
}

// ParentSpan is the ID of the innermost span opened through StartSpan, or 0.
func ParentSpan(ctx context.Context) uint64 {
	return frameOf(ctx).parent
}

// StartSpan begins a span under the one recorded in ctx and returns a context
// that parents later spans on it. A span filtered out by the tracer level
// leaves the parent unchanged, so children attach to the nearest emitted one.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	f := frameOf(ctx)
	span := Begin(f.tracer, scope, name, f.parent)
	if span.ID() == 0 || ctx == nil {
		return ctx, span
	}
	return context.WithValue(ctx, frameKey{}, frame{tracer: f.tracer, parent: span.ID()}), span
}
