// Package services – GameService
//
// GameService is the consumer-facing surface of the engine. It resolves daily
// words, evaluates guesses against an issued word, records finished attempts
// in the ledger and aggregates statistics from it.
//
// Guesses are always re-evaluated server side: recorded attempts carry
// statuses computed here, never statuses sent by a client.
//
// Observability: public methods are OpenTelemetry-instrumented with user and
// issued-word identifiers as span attributes.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-wordle-backend/internal/domain"
	"github.com/tbourn/go-wordle-backend/internal/lexicon"
	"github.com/tbourn/go-wordle-backend/internal/observability"
	"github.com/tbourn/go-wordle-backend/internal/repo"
	"github.com/tbourn/go-wordle-backend/internal/wordle"
)

// DayKeyLayout formats daily issuance keys.
const DayKeyLayout = "2006-01-02"

// GameService coordinates the scheduler, the lexicon and the ledger.
type GameService struct {
	DB        *gorm.DB
	Lexicon   LexiconSource
	Scheduler *Scheduler

	// MaxAttempts is the number of guesses per game.
	MaxAttempts int
	// Location defines calendar days for daily keys and streaks.
	Location *time.Location

	// Now is the clock; tests override it.
	Now func() time.Time
}

// NewGameService constructs a GameService. loc nil means UTC.
func NewGameService(db *gorm.DB, lex LexiconSource, sched *Scheduler, maxAttempts int, loc *time.Location) *GameService {
	if loc == nil {
		loc = time.UTC
	}
	if maxAttempts < 1 {
		maxAttempts = wordle.DefaultMaxAttempts
	}
	return &GameService{
		DB:          db,
		Lexicon:     lex,
		Scheduler:   sched,
		MaxAttempts: maxAttempts,
		Location:    loc,
		Now:         time.Now,
	}
}

func (s *GameService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *GameService) tracer() trace.Tracer {
	return observability.Tracer("services/GameService")
}

// DayKey returns the daily issuance key for t in the game time zone.
func (s *GameService) DayKey(t time.Time) string {
	return t.In(s.Location).Format(DayKeyLayout)
}

// Daily resolves today's word.
func (s *GameService) Daily(ctx context.Context) (*domain.IssuedWord, error) {
	return s.GetOrCreateIssuedWord(ctx, s.DayKey(s.now()))
}

// GetOrCreateIssuedWord resolves the daily word bound to key.
func (s *GameService) GetOrCreateIssuedWord(ctx context.Context, key string) (*domain.IssuedWord, error) {
	ctx, span := s.tracer().Start(ctx, "GetOrCreateIssuedWord",
		trace.WithAttributes(attribute.String("issue.key", key)),
	)
	defer span.End()
	return s.Scheduler.Resolve(ctx, key, domain.ModeDaily, "")
}

// IssuedWord returns an issued word by id.
func (s *GameService) IssuedWord(ctx context.Context, id string) (*domain.IssuedWord, error) {
	w, err := repo.GetIssuedWord(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrIssuedWordNotFound
	}
	return w, err
}

// EvaluateGuess validates guessText and scores it against the issued word.
func (s *GameService) EvaluateGuess(ctx context.Context, issuedWordID, guessText string) (*domain.Guess, bool, error) {
	ctx, span := s.tracer().Start(ctx, "EvaluateGuess",
		trace.WithAttributes(attribute.String("issued_word.id", issuedWordID)),
	)
	defer span.End()

	w, err := s.IssuedWord(ctx, issuedWordID)
	if err != nil {
		return nil, false, err
	}
	lex, err := loadLexicon(ctx, s.Lexicon)
	if err != nil {
		observability.Guesses.WithLabelValues("rejected").Inc()
		return nil, false, err
	}
	g, err := s.evaluate(lex, w.Word, guessText)
	if err != nil {
		observability.Guesses.WithLabelValues("rejected").Inc()
		return nil, false, err
	}
	won := wordle.IsWin(g.Statuses)
	if won {
		observability.Guesses.WithLabelValues("win").Inc()
	} else {
		observability.Guesses.WithLabelValues("miss").Inc()
	}
	return g, won, nil
}

// RecordAttempt stores a finished game. The guesses are replayed against the
// secret and must support the claimed status. Daily words accept one record
// per user; infinite words are saved through their session.
func (s *GameService) RecordAttempt(ctx context.Context, userID, issuedWordID string, guesses []string, status domain.GameStatus) (*domain.Attempt, error) {
	ctx, span := s.tracer().Start(ctx, "RecordAttempt",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("issued_word.id", issuedWordID),
			attribute.String("attempt.status", string(status)),
		),
	)
	defer span.End()

	if !status.Terminal() {
		return nil, fmt.Errorf("%w: status must be won or lost", ErrInvalidInput)
	}
	w, err := s.IssuedWord(ctx, issuedWordID)
	if err != nil {
		return nil, err
	}
	if w.Mode == domain.ModeInfinite {
		return s.SaveInfinite(ctx, userID, issuedWordID, guesses, status)
	}

	replayed, err := s.replay(ctx, w.Word, guesses, status)
	if err != nil {
		return nil, err
	}
	done := s.now()
	a := &domain.Attempt{
		UserID:       userID,
		IssuedWordID: w.ID,
		Mode:         w.Mode,
		Guesses:      replayed,
		Status:       status,
		AttemptCount: len(replayed),
		CompletedAt:  &done,
	}
	if err := repo.CreateAttempt(ctx, s.DB, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAttemptExists
		}
		return nil, err
	}
	return a, nil
}

// GetAttempt returns the user's attempt on an issued word.
func (s *GameService) GetAttempt(ctx context.Context, userID, issuedWordID string) (*domain.Attempt, error) {
	a, err := repo.GetAttempt(ctx, s.DB, userID, issuedWordID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrAttemptNotFound
	}
	return a, err
}

// ListAttempts returns the user's finished daily attempts, oldest first.
func (s *GameService) ListAttempts(ctx context.Context, userID string) ([]domain.Attempt, error) {
	return repo.ListCompletedAttempts(ctx, s.DB, userID, domain.ModeDaily)
}

// Stats aggregates the user's finished daily attempts.
func (s *GameService) Stats(ctx context.Context, userID string) (domain.Stats, error) {
	ctx, span := s.tracer().Start(ctx, "Stats",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	attempts, err := s.ListAttempts(ctx, userID)
	if err != nil {
		return domain.Stats{}, err
	}
	results := make([]wordle.Result, 0, len(attempts))
	for _, a := range attempts {
		results = append(results, wordle.ResultOf(a))
	}
	return wordle.ComputeStats(results, s.MaxAttempts, s.Location), nil
}

// StatsVersion identifies the ledger state Stats depends on: the number of
// finished daily attempts and the latest completion time.
func (s *GameService) StatsVersion(ctx context.Context, userID string) (int64, *time.Time, error) {
	return repo.AttemptsStats(ctx, s.DB, userID, domain.ModeDaily)
}

// ----------------------------------------------------------------------------
// Validation

// evaluate normalizes guessText, checks it against lex and scores it.
func (s *GameService) evaluate(lex *lexicon.Lexicon, secret, guessText string) (*domain.Guess, error) {
	canonical, err := s.Lexicon.Normalizer().NormalizeGuess(guessText)
	switch {
	case errors.Is(err, lexicon.ErrBadLength):
		return nil, ErrInvalidGuessLength
	case errors.Is(err, lexicon.ErrBadCharset):
		return nil, ErrInvalidGuessChars
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if utf8.RuneCountInString(canonical) != utf8.RuneCountInString(secret) {
		return nil, ErrInvalidGuessLength
	}
	if !lex.Contains(canonical) {
		return nil, ErrNotInLexicon
	}
	return &domain.Guess{Word: canonical, Statuses: wordle.Evaluate(secret, canonical)}, nil
}

// replay scores every guess and checks that the sequence supports status.
func (s *GameService) replay(ctx context.Context, secret string, guesses []string, status domain.GameStatus) ([]domain.Guess, error) {
	if len(guesses) > s.MaxAttempts {
		return nil, ErrTooManyGuesses
	}
	lex, err := loadLexicon(ctx, s.Lexicon)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Guess, 0, len(guesses))
	for _, text := range guesses {
		g, err := s.evaluate(lex, secret, text)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	derived, err := wordle.Outcome(out, s.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutcome, err)
	}
	if derived != status {
		return nil, fmt.Errorf("%w: guesses give %q, got %q", ErrInvalidOutcome, derived, status)
	}
	return out, nil
}
