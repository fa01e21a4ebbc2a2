package lexicon

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Lexicon is an immutable set of canonical words. It is safe for concurrent
// reads once built.
type Lexicon struct {
	display map[string]string
	sorted  []string
}

// New builds a Lexicon from already normalized entries. Duplicate canonical
// forms keep the first display form seen.
func New(entries []Entry) *Lexicon {
	l := &Lexicon{display: make(map[string]string, len(entries))}
	for _, e := range entries {
		if e.Canonical == "" {
			continue
		}
		if _, dup := l.display[e.Canonical]; dup {
			continue
		}
		l.display[e.Canonical] = e.Display
		l.sorted = append(l.sorted, e.Canonical)
	}
	sort.Strings(l.sorted)
	return l
}

// FromStrings normalizes each line with n and builds a Lexicon.
func FromStrings(n *Normalizer, lines []string) *Lexicon {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if e, ok := n.Normalize(line); ok {
			entries = append(entries, e)
		}
	}
	return New(entries)
}

// Read parses a line-oriented dictionary from r. UTF-8 is assumed unless a
// byte-order mark selects UTF-16. Blank lines and lines starting with '#'
// are skipped; every other line goes through n.Normalize.
func Read(r io.Reader, n *Normalizer) (*Lexicon, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(r, dec))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if e, ok := n.Normalize(line); ok {
			entries = append(entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(entries), nil
}

// Len returns the number of canonical words.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.sorted)
}

// Contains reports whether canonical is in the set.
func (l *Lexicon) Contains(canonical string) bool {
	if l == nil {
		return false
	}
	_, ok := l.display[canonical]
	return ok
}

// Display returns the display form recorded for canonical.
func (l *Lexicon) Display(canonical string) (string, bool) {
	if l == nil {
		return "", false
	}
	d, ok := l.display[canonical]
	return d, ok
}

// Words returns the canonical words in ascending order. The slice is a copy.
func (l *Lexicon) Words() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.sorted))
	copy(out, l.sorted)
	return out
}
