package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelError, ScopeDriver, false},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestStreamTracerWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)

	span := Begin(FromContext(ctx), ScopePass, "sealed", 0)
	span.WithExtra("filled", "2").End("ok")
	Begin(FromContext(ctx), ScopeModule, "hidden", span.ID()).End("")

	out := buf.String()
	if !strings.Contains(out, "pass:sealed") || !strings.Contains(out, "{filled=2}") {
		t.Fatalf("unexpected trace output:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("module span leaked through phase level:\n%s", out)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeNode, name, "", 0)
	}
	events := r.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("snapshot = %+v", events)
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatal("expected nop tracer")
	}
	if s := Begin(Nop, ScopeDriver, "x", 0); s.End("") != 0 {
		t.Fatal("nop span reported duration")
	}
}

func TestStartSpanNestsThroughContext(t *testing.T) {
	r := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), r)

	scanCtx, scan := StartSpan(ctx, ScopeDriver, "scan")
	if ParentSpan(scanCtx) != scan.ID() || ParentSpan(ctx) != 0 {
		t.Fatalf("parent = %d, want %d", ParentSpan(scanCtx), scan.ID())
	}
	// module spans are below the phase level: the pass span still hangs off scan
	fileCtx, file := StartSpan(scanCtx, ScopeModule, "a.kt")
	if file.ID() != 0 || ParentSpan(fileCtx) != scan.ID() {
		t.Fatalf("filtered span changed the parent: %d", ParentSpan(fileCtx))
	}
	_, pass := StartSpan(fileCtx, ScopePass, "sealed")
	pass.End("")
	scan.End("")

	events := r.Snapshot()
	if len(events) != 4 {
		t.Fatalf("events = %+v", events)
	}
	if events[1].Name != "sealed" || events[1].ParentID != scan.ID() {
		t.Fatalf("sealed span = %+v", events[1])
	}
}

func TestStartSpanWithoutTracer(t *testing.T) {
	ctx, span := StartSpan(context.Background(), ScopeDriver, "scan")
	if span.ID() != 0 || ParentSpan(ctx) != 0 || FromContext(ctx).Enabled() {
		t.Fatal("expected a nop span")
	}
}
