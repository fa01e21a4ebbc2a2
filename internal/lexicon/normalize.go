// Package lexicon turns raw dictionary sources into an immutable set of
// canonical candidate words and owns the process-wide, lazily loaded handle
// to that set.
//
// Canonical words are uppercase, stripped of combining marks and restricted
// to a configured alphabet and length. Each canonical word keeps the display
// form it was first seen with (uppercased, accents preserved).
//
// The package never logs; callers decide what to report.
package lexicon

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Defaults used when no Option overrides them.
const (
	DefaultWordLength = 5
	DefaultAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	// ErrBadLength is returned by NormalizeGuess when the guess does not have
	// the configured number of letters.
	ErrBadLength = errors.New("wrong word length")
	// ErrBadCharset is returned by NormalizeGuess when the guess contains a
	// letter outside the configured alphabet.
	ErrBadCharset = errors.New("letter outside alphabet")
)

// Entry is a normalized dictionary word.
type Entry struct {
	Canonical string
	Display   string
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	wordLength int
	alphabet   string
}

func defaultConfig() config {
	return config{
		wordLength: DefaultWordLength,
		alphabet:   DefaultAlphabet,
	}
}

// WithWordLength sets the exact rune length canonical words must have.
func WithWordLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.wordLength = n
		}
	}
}

// WithAlphabet sets the letters canonical words may contain. The value is
// uppercased; an empty value is ignored.
func WithAlphabet(letters string) Option {
	return func(c *config) {
		if s := strings.ToUpper(strings.TrimSpace(letters)); s != "" {
			c.alphabet = s
		}
	}
}

// ----------------------------------------------------------------------------
// Normalizer

// Normalizer applies the canonicalization rules. It is immutable and safe for
// concurrent use.
type Normalizer struct {
	length   int
	alphabet map[rune]struct{}
}

// NewNormalizer builds a Normalizer from the given options.
func NewNormalizer(opts ...Option) *Normalizer {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	set := make(map[rune]struct{}, utf8.RuneCountInString(cfg.alphabet))
	for _, r := range cfg.alphabet {
		set[r] = struct{}{}
	}
	return &Normalizer{length: cfg.wordLength, alphabet: set}
}

// WordLength reports the configured word length.
func (n *Normalizer) WordLength() int { return n.length }

// Normalize converts one raw dictionary line into an Entry. The boolean is
// false when the line does not yield an acceptable word; that is a filter
// result, not an error.
//
// Lines may carry annotations after the first comma or period
// ("abbé,n.m." or "abbé.nom"); only the leading token is kept.
func (n *Normalizer) Normalize(raw string) (Entry, bool) {
	tok := leadingToken(raw)
	if tok == "" || strings.ContainsFunc(tok, unicode.IsSpace) {
		return Entry{}, false
	}
	display := upper(tok)
	canonical := stripMarks(display)
	if !n.accepts(canonical) {
		return Entry{}, false
	}
	return Entry{Canonical: canonical, Display: display}, true
}

// NormalizeGuess canonicalizes user input and reports why it cannot be a
// word: ErrBadLength or ErrBadCharset.
func (n *Normalizer) NormalizeGuess(s string) (string, error) {
	canonical := stripMarks(upper(strings.TrimSpace(s)))
	if utf8.RuneCountInString(canonical) != n.length {
		return "", ErrBadLength
	}
	if !n.inAlphabet(canonical) {
		return "", ErrBadCharset
	}
	return canonical, nil
}

func (n *Normalizer) accepts(canonical string) bool {
	return utf8.RuneCountInString(canonical) == n.length && n.inAlphabet(canonical)
}

func (n *Normalizer) inAlphabet(s string) bool {
	for _, r := range s {
		if _, ok := n.alphabet[r]; !ok {
			return false
		}
	}
	return true
}

// ----------------------------------------------------------------------------
// Helpers

func leadingToken(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, ",."); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// upper uses a fresh caser per call; cases.Caser is not safe for concurrent use.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// stripMarks decomposes s and drops nonspacing marks (É -> E).
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
