package diag

import (
	"testing"

	"sealscan/internal/source"
)

func TestBagRespectsLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		added := bag.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{Start: uint32(i)}})
		if want := i < 2; added != want {
			t.Fatalf("add #%d = %v, want %v", i, added, want)
		}
	}
	if bag.Len() != 2 || !bag.HasErrors() {
		t.Fatalf("unexpected bag state: len=%d errors=%v", bag.Len(), bag.HasErrors())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	ReportWarning(r, SemaUnresolvedType, source.Span{File: 0, Start: 10, End: 12}, "b").Emit()
	ReportError(r, SynUnexpectedToken, source.Span{File: 0, Start: 1, End: 2}, "a").Emit()
	dup := ReportError(r, SynUnexpectedToken, source.Span{File: 0, Start: 1, End: 2}, "a again")
	dup.Emit()
	dup.Emit()

	bag.Sort()
	bag.Dedup()
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", len(items))
	}
	if items[0].Code != SynUnexpectedToken || items[1].Code != SemaUnresolvedType {
		t.Fatalf("wrong order: %v, %v", items[0].Code, items[1].Code)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:      "LEX1001",
		SynExpectIdentifier: "SYN2003",
		SemaDuplicateSymbol: "SEM3001",
		IOLoadFileError:     "IO4001",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestDiagnosticRendersCodeOnce(t *testing.T) {
	d := Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Message: "unexpected token in class body"}
	if got, want := d.String(), "error SYN2001: unexpected token in class body"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := SynUnexpectedToken.String(); got != "SYN2001" {
		t.Fatalf("Code.String() = %q", got)
	}
	if SynUnexpectedToken.Title() == "" {
		t.Fatal("title must stay available")
	}
}
