package heuristic

import "testing"

func TestNormalizeLowercase(t *testing.T) {
	if got := Normalize("HELLO WORLD"); got != "hello world" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestNormalizeStripsFrenchAccents(t *testing.T) {
	got := Normalize("Réunion prévue à Noël")
	if got != "reunion prevue a noel" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	if got := Normalize("hello   world\t\nnewline"); got != "hello world newline" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := Normalize("   \t\n "); got != "" {
		t.Fatalf("expected empty for whitespace-only, got %q", got)
	}
}

func TestNormalizeKeepsAlphanumerics(t *testing.T) {
	got := Normalize("FM1 et EQM-002")
	if got != "fm1 et eqm-002" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Bon de commande reçu",
		"CDR Review - Project X",
		"  Mixed   CASE  àéïöù  ",
		"",
		"no-accents here 123",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
