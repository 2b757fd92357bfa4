package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerAccumulatesByName(t *testing.T) {
	tm := NewTimer()
	tm.Add("parse", 2*time.Millisecond)
	tm.Add("parse", 3*time.Millisecond)
	idx := tm.Begin("sealed")
	tm.End(idx, "2 classes")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].Count != 2 || r.Phases[0].DurationMS < 5 {
		t.Fatalf("parse phase = %+v", r.Phases[0])
	}
	if !strings.Contains(tm.Summary(), "// 2 classes") {
		t.Fatalf("summary missing note:\n%s", tm.Summary())
	}
}
