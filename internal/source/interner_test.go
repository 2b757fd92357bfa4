package source

import "testing"

func TestInternerReusesIDs(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Animal")
	b := in.Intern("Animal")
	if a != b {
		t.Fatalf("same string got different ids: %d vs %d", a, b)
	}
	if a == NoStringID {
		t.Fatalf("non-empty string interned as NoStringID")
	}
	if s := in.MustLookup(a); s != "Animal" {
		t.Fatalf("lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Fatalf("lookup of unknown id must fail")
	}
}

func TestInternIdentNormalizesToNFC(t *testing.T) {
	in := NewInterner()
	composed := in.InternIdent("Caf\u00e9")
	decomposed := in.InternIdent("Cafe\u0301")
	if composed != decomposed {
		t.Fatalf("NFC forms should share an id: %d vs %d", composed, decomposed)
	}
	if _, ok := in.Find("Cafe\u0301"); ok {
		t.Fatalf("decomposed spelling must not be stored")
	}
}
