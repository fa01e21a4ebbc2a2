// Package services – Scheduler
//
// The Scheduler binds exactly one word to each issuance key. The pool of
// candidates is the lexicon minus every word issued so far; a daily key is
// hashed to pick deterministically from that pool, an infinite key picks at
// random. Persistence is optimistic: the issued_words table has unique
// indexes on key and word, and the first committer wins.
//
//   - key conflict: another caller bound this key first; return its word.
//   - word conflict: another key took our pick; recompute the pool and retry.
//
// Concurrent resolves of one key inside the process are collapsed with
// singleflight before they reach the database.
package services

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/tbourn/go-wordle-backend/internal/definition"
	"github.com/tbourn/go-wordle-backend/internal/domain"
	"github.com/tbourn/go-wordle-backend/internal/lexicon"
	"github.com/tbourn/go-wordle-backend/internal/observability"
	"github.com/tbourn/go-wordle-backend/internal/repo"
)

// LexiconSource provides the loaded dictionary. *lexicon.Handle implements it.
type LexiconSource interface {
	Get(ctx context.Context) (*lexicon.Lexicon, error)
	Normalizer() *lexicon.Normalizer
}

// Picker selects one word of a non-empty, sorted pool for key.
type Picker func(key string, pool []string) string

// DeterministicPick hashes key (FNV-1a) into the pool, so every caller with
// the same key and the same history picks the same word.
func DeterministicPick(key string, pool []string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return pool[h.Sum64()%uint64(len(pool))]
}

// RandomPick picks uniformly at random.
func RandomPick(_ string, pool []string) string {
	return pool[rand.IntN(len(pool))]
}

// Scheduler issues words. The zero value is not usable; set DB and Lexicon.
type Scheduler struct {
	DB      *gorm.DB
	Lexicon LexiconSource

	// Definer enriches new words; nil stores the placeholder.
	Definer definition.Definer
	// DefinitionTimeout bounds enrichment across one resolve, retries included.
	DefinitionTimeout time.Duration

	// MaxRetries bounds word-conflict retries per resolve. Values < 1 mean 1.
	MaxRetries int

	// DailyPick and InfinitePick default to DeterministicPick and RandomPick.
	DailyPick    Picker
	InfinitePick Picker

	group singleflight.Group
}

// NewScheduler returns a Scheduler with default pickers.
func NewScheduler(db *gorm.DB, lex LexiconSource, def definition.Definer, defTimeout time.Duration, maxRetries int) *Scheduler {
	return &Scheduler{
		DB:                db,
		Lexicon:           lex,
		Definer:           def,
		DefinitionTimeout: defTimeout,
		MaxRetries:        maxRetries,
		DailyPick:         DeterministicPick,
		InfinitePick:      RandomPick,
	}
}

// Resolve returns the word bound to key, issuing one when absent. ownerID is
// recorded on infinite words.
func (s *Scheduler) Resolve(ctx context.Context, key string, mode domain.Mode, ownerID string) (*domain.IssuedWord, error) {
	ctx, span := observability.Tracer("services/Scheduler").Start(ctx, "Resolve",
		trace.WithAttributes(
			attribute.String("issue.key", key),
			attribute.String("issue.mode", string(mode)),
		),
	)
	defer span.End()

	if key == "" {
		return nil, fmt.Errorf("%w: empty issuance key", ErrInvalidInput)
	}

	// Shared work must not die with the first caller's request.
	sharedCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.resolve(sharedCtx, key, mode, ownerID)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			span.RecordError(res.Err)
			return nil, res.Err
		}
		w := *res.Val.(*domain.IssuedWord)
		span.SetAttributes(attribute.String("issue.id", w.ID), attribute.Bool("issue.shared", res.Shared))
		return &w, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Scheduler) resolve(ctx context.Context, key string, mode domain.Mode, ownerID string) (*domain.IssuedWord, error) {
	retries := s.MaxRetries
	if retries < 1 {
		retries = 1
	}

	// One enrichment budget per resolve; a word seen on an earlier retry is
	// not fetched again.
	defCtx := ctx
	if s.DefinitionTimeout > 0 {
		var cancel context.CancelFunc
		defCtx, cancel = context.WithTimeout(ctx, s.DefinitionTimeout)
		defer cancel()
	}
	defs := make(map[string]string)

	for attempt := 0; attempt < retries; attempt++ {
		if w, err := repo.GetIssuedWordByKey(ctx, s.DB, key); err == nil {
			return w, nil
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}

		lex, err := loadLexicon(ctx, s.Lexicon)
		if err != nil {
			return nil, err
		}
		pool, err := s.pool(ctx, lex)
		if err != nil {
			return nil, err
		}
		if len(pool) == 0 {
			return nil, ErrLexiconExhausted
		}

		word := s.picker(mode)(key, pool)
		display, _ := lex.Display(word)
		def, seen := defs[word]
		if !seen {
			def = s.define(defCtx, display)
			defs[word] = def
		}
		w := &domain.IssuedWord{
			Key:        key,
			Mode:       mode,
			Word:       word,
			Display:    display,
			Definition: def,
			OwnerID:    ownerID,
		}

		err = repo.CreateIssuedWord(ctx, s.DB, w)
		if err == nil {
			observability.WordsIssued.WithLabelValues(string(mode)).Inc()
			log.Info().Str("key", key).Str("mode", string(mode)).Str("issued_word_id", w.ID).Int("pool", len(pool)).Msg("word issued")
			return w, nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return nil, err
		}

		// Lost a race. Either the key is now bound, or our word was taken.
		if winner, gerr := repo.GetIssuedWordByKey(ctx, s.DB, key); gerr == nil {
			observability.IssueConflicts.WithLabelValues("key").Inc()
			return winner, nil
		}
		observability.IssueConflicts.WithLabelValues("word").Inc()
		log.Debug().Str("key", key).Str("word", word).Int("attempt", attempt+1).Msg("issued word taken by another key, retrying")
	}
	return nil, fmt.Errorf("%w: key %q after %d attempts", ErrIssueContention, key, retries)
}

// pool returns the lexicon words never issued so far, in lexicon order.
func (s *Scheduler) pool(ctx context.Context, lex *lexicon.Lexicon) ([]string, error) {
	issued, err := repo.IssuedWords(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	used := make(map[string]struct{}, len(issued))
	for _, w := range issued {
		used[w] = struct{}{}
	}
	words := lex.Words()
	pool := words[:0]
	for _, w := range words {
		if _, taken := used[w]; !taken {
			pool = append(pool, w)
		}
	}
	return pool, nil
}

func (s *Scheduler) picker(mode domain.Mode) Picker {
	if mode == domain.ModeInfinite {
		if s.InfinitePick != nil {
			return s.InfinitePick
		}
		return RandomPick
	}
	if s.DailyPick != nil {
		return s.DailyPick
	}
	return DeterministicPick
}

// define fetches a definition for display within ctx, falling back to the
// placeholder. A spent budget skips the call.
func (s *Scheduler) define(ctx context.Context, display string) string {
	if s.Definer == nil {
		return definition.Placeholder(display)
	}
	if err := ctx.Err(); err != nil {
		observability.DefinitionFailures.Inc()
		log.Warn().Err(err).Str("word", display).Msg("definition budget spent, using placeholder")
		return definition.Placeholder(display)
	}
	def, err := s.Definer.Define(ctx, display)
	if err != nil || def == "" {
		observability.DefinitionFailures.Inc()
		log.Warn().Err(err).Str("word", display).Msg("definition unavailable, using placeholder")
		return definition.Placeholder(display)
	}
	return definition.Format(display, def)
}

// loadLexicon maps every load failure to ErrEmptyLexicon so callers fail closed.
func loadLexicon(ctx context.Context, src LexiconSource) (*lexicon.Lexicon, error) {
	if src == nil {
		return nil, ErrEmptyLexicon
	}
	lex, err := src.Get(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrEmptyLexicon, err)
	}
	if lex.Len() == 0 {
		return nil, ErrEmptyLexicon
	}
	observability.LexiconWords.Set(float64(lex.Len()))
	return lex, nil
}
