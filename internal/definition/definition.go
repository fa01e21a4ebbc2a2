// Package definition looks up short dictionary definitions for issued words.
//
// Lookups are best effort: callers bound them with a timeout and substitute
// Placeholder on any error.
package definition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-wordle-backend/internal/observability"
)

// MaxRunes caps the length of a returned definition.
const MaxRunes = 200

const userAgent = "go-wordle-backend/1.0 (+https://github.com/tbourn/go-wordle-backend)"

// ErrNotFound is returned when no variant of the word yields a usable line.
var ErrNotFound = errors.New("definition not found")

// Definer resolves a definition for a word in display form.
type Definer interface {
	Define(ctx context.Context, word string) (string, error)
}

// Placeholder is stored when no definition could be obtained.
func Placeholder(display string) string {
	return fmt.Sprintf("Définition non disponible pour %q", display)
}

// Format renders a definition the way it is stored on an issued word.
func Format(display, def string) string {
	return "(" + display + ") " + def
}

// Client queries a MediaWiki "extracts" endpoint (fr.wiktionary by default).
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Timeout time.Duration
	Locale  language.Tag
}

// NewClient returns a Client for baseURL with a per-call timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
		Timeout: timeout,
		Locale:  language.French,
	}
}

// Define tries the word as given (lowercased), capitalized and uppercased,
// returning the first usable definition line.
func (c *Client) Define(ctx context.Context, word string) (string, error) {
	ctx, span := observability.Tracer("definition").Start(ctx, "Define",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("word", word)),
	)
	defer span.End()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var lastErr error = ErrNotFound
	for _, v := range c.variants(word) {
		extract, err := c.fetch(ctx, v)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if def, ok := Extract(extract); ok {
			span.SetAttributes(attribute.String("definition.variant", v))
			return def, nil
		}
	}
	span.RecordError(lastErr)
	span.SetStatus(codes.Error, lastErr.Error())
	return "", lastErr
}

func (c *Client) variants(word string) []string {
	lower := cases.Lower(c.Locale).String(strings.TrimSpace(word))
	if lower == "" {
		return nil
	}
	title := cases.Title(c.Locale).String(lower)
	up := cases.Upper(c.Locale).String(lower)

	out := []string{lower}
	for _, v := range []string{title, up} {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

func (c *Client) fetch(ctx context.Context, title string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("prop", "extracts")
	q.Set("explaintext", "1")
	q.Set("redirects", "1")
	q.Set("titles", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("definition lookup: status %d", resp.StatusCode)
	}
	var body extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("definition lookup: decode: %w", err)
	}
	for id, page := range body.Query.Pages {
		if id == "-1" {
			continue
		}
		if strings.TrimSpace(page.Extract) != "" {
			return page.Extract, nil
		}
	}
	return "", ErrNotFound
}

// ----------------------------------------------------------------------------
// Extraction

var (
	sectionHeaders = []string{"== Français ==", "==Français==", "== FRANÇAIS =="}
	skipPrefixes   = []string{"Étymologie", "Prononciation", "Synonymes", "Antonymes", "Voir aussi", "Références"}

	shortCapsRE  = regexp.MustCompile(`^[A-ZÀ-ÖØ-ÞŒ]{1,3}$`)
	numberingRE  = regexp.MustCompile(`^[0-9]+[.)]\s*`)
	leadParenRE  = regexp.MustCompile(`^\([^)]+\)\s*`)
	spacesRE     = regexp.MustCompile(`\s+`)
	partOfSpeech = regexp.MustCompile(`(?i)^(masculin|féminin|verbe|nom|adjectif|adverbe)$`)
)

// Extract picks the first definition-like line of a plain-text extract,
// preferring the French section when present. Lines shorter than 10 runes,
// headers and metadata are skipped. The result is clipped to MaxRunes.
func Extract(extract string) (string, bool) {
	section := extract
	for _, h := range sectionHeaders {
		if _, after, found := strings.Cut(extract, h); found {
			section = after
			break
		}
	}

	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimSpace(raw)
		n := utf8.RuneCountInString(line)
		if n < 10 || n >= 500 || skipLine(line) {
			continue
		}
		def := numberingRE.ReplaceAllString(line, "")
		def = leadParenRE.ReplaceAllString(def, "")
		def = strings.TrimSpace(spacesRE.ReplaceAllString(def, " "))
		if utf8.RuneCountInString(def) < 10 || partOfSpeech.MatchString(def) {
			continue
		}
		return clip(def, MaxRunes), true
	}
	return "", false
}

func skipLine(line string) bool {
	if strings.HasPrefix(line, "=") ||
		strings.Contains(line, `\`) ||
		strings.Contains(line, "{{") ||
		strings.Contains(line, "[[") ||
		shortCapsRE.MatchString(line) {
		return true
	}
	for _, p := range skipPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
