package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sealscan/internal/driver"
)

func sampleResult() *driver.Result {
	return &driver.Result{
		Root: "src",
		Files: []driver.FileResult{
			{
				Path: "zoo/Animal.kt",
				Sealed: []driver.SealedClass{
					{ID: "zoo/Animal", Kind: "class", Line: 3, Col: 14, Inheritors: []string{"zoo/Animal.Dog", "zoo/Cat"}},
					{ID: "zoo/Empty", Kind: "interface", Line: 9, Col: 18},
				},
				Diagnostics: []driver.Diagnostic{
					{Code: "SEM3002", Severity: "WARNING", Message: "unresolved reference 'X'", Line: 5, Col: 11},
				},
			},
			{Path: "plain/None.kt"},
			{Path: "broken/Cycle.kt", Err: "broken/Cycle.kt: sealed inheritors: alias cycle: broken/A -> broken/B -> broken/A"},
		},
	}
}

func TestPrettyTree(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResult(), Options{}); err != nil {
		t.Fatal(err)
	}
	want := `zoo/Animal.kt
  sealed class zoo/Animal  3:14
    ├─ zoo/Animal.Dog
    └─ zoo/Cat
  sealed interface zoo/Empty  9:18
    (no inheritors)
broken/Cycle.kt
  error: broken/Cycle.kt: sealed inheritors: alias cycle: broken/A -> broken/B -> broken/A
3 files, 2 sealed classes, 1 failed
`
	if got := buf.String(); got != want {
		t.Fatalf("pretty output mismatch:\n--- got\n%s--- want\n%s", got, want)
	}
}

func TestPrettyDiagnosticsAndQuiet(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResult(), Options{WithDiagnostics: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "zoo/Animal.kt:5:11: warning SEM3002: unresolved reference 'X'") {
		t.Fatalf("diagnostic line missing:\n%s", buf.String())
	}

	buf.Reset()
	if err := Write(&buf, sampleResult(), Options{Quiet: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "zoo/Animal") || !strings.Contains(buf.String(), "alias cycle") {
		t.Fatalf("quiet output:\n%s", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResult(), Options{Format: FormatJSON}); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Files []struct {
			Path        string               `json:"path"`
			Sealed      []driver.SealedClass `json:"sealed"`
			Diagnostics []driver.Diagnostic  `json:"diagnostics"`
			Err         string               `json:"error"`
		} `json:"files"`
		Summary summaryJSON `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if decoded.Summary != (summaryJSON{Files: 3, Sealed: 2, Failed: 1}) {
		t.Fatalf("summary = %+v", decoded.Summary)
	}
	if len(decoded.Files[0].Diagnostics) != 0 {
		t.Fatal("diagnostics emitted without WithDiagnostics")
	}
	if got := decoded.Files[0].Sealed[0].Inheritors; len(got) != 2 || got[1] != "zoo/Cat" {
		t.Fatalf("inheritors = %v", got)
	}
	if decoded.Files[2].Err == "" {
		t.Fatal("failure not reported")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Fatalf("json: %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("xml accepted")
	}
}
