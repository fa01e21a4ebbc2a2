package lexicon

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

type boomReader struct{}

func (boomReader) Read(_ []byte) (int, error) { return 0, errors.New("boom") }

func TestNew_FirstDisplayWins(t *testing.T) {
	lex := FromStrings(NewNormalizer(), []string{"école", "ECOLE", "abbey", "crane"})

	if lex.Len() != 3 {
		t.Fatalf("Len = %d; want 3", lex.Len())
	}
	if d, ok := lex.Display("ECOLE"); !ok || d != "ÉCOLE" {
		t.Fatalf("Display(ECOLE) = %q,%v; want ÉCOLE", d, ok)
	}
	if want := []string{"ABBEY", "CRANE", "ECOLE"}; !reflect.DeepEqual(lex.Words(), want) {
		t.Fatalf("Words = %v; want %v", lex.Words(), want)
	}
	if !lex.Contains("CRANE") || lex.Contains("crane") || lex.Contains("FUZZY") {
		t.Fatalf("Contains mismatch")
	}
}

func TestWords_ReturnsCopy(t *testing.T) {
	lex := FromStrings(NewNormalizer(), []string{"abbey", "crane"})
	w := lex.Words()
	w[0] = "ZZZZZ"
	if lex.Words()[0] != "ABBEY" {
		t.Fatalf("Words leaked internal slice")
	}
}

func TestNilLexicon(t *testing.T) {
	var lex *Lexicon
	if lex.Len() != 0 || lex.Contains("ABBEY") || lex.Words() != nil {
		t.Fatalf("nil lexicon should be empty")
	}
	if _, ok := lex.Display("ABBEY"); ok {
		t.Fatalf("nil lexicon Display should miss")
	}
}

func TestRead_PlainAndRichLines(t *testing.T) {
	src := "# french sample\n\nABBEY\nabbés,n.m.\ncrâne.n\nnope\n\nCRANE\n"
	lex, err := Read(strings.NewReader(src), NewNormalizer())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := []string{"ABBES", "ABBEY", "CRANE"}; !reflect.DeepEqual(lex.Words(), want) {
		t.Fatalf("Words = %v; want %v", lex.Words(), want)
	}
	if d, _ := lex.Display("CRANE"); d != "CRÂNE" {
		t.Fatalf("Display(CRANE) = %q; want CRÂNE", d)
	}
}

func TestRead_UTF16WithBOM(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	raw, err := enc.String("école\r\nabbey\r\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	lex, err := Read(strings.NewReader(raw), NewNormalizer())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !lex.Contains("ECOLE") || !lex.Contains("ABBEY") || lex.Len() != 2 {
		t.Fatalf("UTF-16 decode failed: %v", lex.Words())
	}
}

func TestRead_Error(t *testing.T) {
	if _, err := Read(boomReader{}, NewNormalizer()); err == nil {
		t.Fatalf("expected reader error")
	}
}
