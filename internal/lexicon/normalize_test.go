package lexicon

import (
	"errors"
	"testing"
)

func TestOptionsAndDefaults(t *testing.T) {
	def := defaultConfig()
	if def.wordLength != 5 || def.alphabet != DefaultAlphabet {
		t.Fatalf("defaultConfig unexpected: %#v", def)
	}

	cfg := def
	WithWordLength(7)(&cfg)
	WithWordLength(0)(&cfg) // no-op
	if cfg.wordLength != 7 {
		t.Fatalf("WithWordLength failed: %d", cfg.wordLength)
	}
	WithAlphabet("  abc ")(&cfg)
	WithAlphabet("   ")(&cfg) // no-op
	if cfg.alphabet != "ABC" {
		t.Fatalf("WithAlphabet failed: %q", cfg.alphabet)
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer()
	cases := []struct {
		raw       string
		ok        bool
		canonical string
		display   string
	}{
		{"ABBEY", true, "ABBEY", "ABBEY"},
		{"abbey", true, "ABBEY", "ABBEY"},
		{"  crane\t", true, "CRANE", "CRANE"},
		{"école", true, "ECOLE", "ÉCOLE"},
		{"crâne", true, "CRANE", "CRÂNE"},
		{"abbés,n.m.", true, "ABBES", "ABBÉS"},
		{"cèpes.n", true, "CEPES", "CÈPES"},
		{"arbre, n.m.", true, "ARBRE", "ARBRE"},
		{"côté.adj", false, "", ""}, // four letters
		{"œuvre", false, "", ""},    // Œ has no decomposition
		{"ab cd", false, "", ""},
		{"abc12", false, "", ""},
		{"toolong", false, "", ""},
		{"", false, "", ""},
		{",n.m.", false, "", ""},
	}
	for _, tc := range cases {
		e, ok := n.Normalize(tc.raw)
		if ok != tc.ok {
			t.Fatalf("Normalize(%q) ok=%v; want %v", tc.raw, ok, tc.ok)
		}
		if ok && (e.Canonical != tc.canonical || e.Display != tc.display) {
			t.Fatalf("Normalize(%q) = %+v; want {%s %s}", tc.raw, e, tc.canonical, tc.display)
		}
	}
}

func TestNormalize_CustomAlphabetAndLength(t *testing.T) {
	n := NewNormalizer(WithAlphabet("abc"), WithWordLength(3))
	if n.WordLength() != 3 {
		t.Fatalf("WordLength = %d", n.WordLength())
	}
	if e, ok := n.Normalize("cab"); !ok || e.Canonical != "CAB" {
		t.Fatalf("cab rejected: %+v %v", e, ok)
	}
	if _, ok := n.Normalize("dab"); ok {
		t.Fatalf("dab accepted outside alphabet")
	}
}

func TestNormalizeGuess(t *testing.T) {
	n := NewNormalizer()
	cases := []struct {
		in   string
		want string
		err  error
	}{
		{" crane ", "CRANE", nil},
		{"Crâne", "CRANE", nil},
		{"cran", "", ErrBadLength},
		{"cranes", "", ErrBadLength},
		{"", "", ErrBadLength},
		{"cr4ne", "", ErrBadCharset},
		{"cr-ne", "", ErrBadCharset},
	}
	for _, tc := range cases {
		got, err := n.NormalizeGuess(tc.in)
		if !errors.Is(err, tc.err) {
			t.Fatalf("NormalizeGuess(%q) err=%v; want %v", tc.in, err, tc.err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeGuess(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
