// Package services – infinite mode
//
// An infinite session is an issued word keyed by a fresh UUID and owned by
// one user, plus that user's attempt on it. The attempt starts as "playing"
// and is saved as a progress snapshot after each guess; once terminal it is
// frozen. Sessions of other users are reported as not found. Deleting a
// session drops the attempt only; its word stays issued and is never reused.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wordle-backend/internal/domain"
	"github.com/tbourn/go-wordle-backend/internal/observability"
	"github.com/tbourn/go-wordle-backend/internal/repo"
)

// StartInfinite issues a new word for userID and opens a playing attempt.
// The returned attempt has IssuedWord populated.
func (s *GameService) StartInfinite(ctx context.Context, userID string) (*domain.Attempt, error) {
	ctx, span := s.tracer().Start(ctx, "StartInfinite",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	w, err := s.Scheduler.Resolve(ctx, uuid.NewString(), domain.ModeInfinite, userID)
	if err != nil {
		return nil, err
	}
	a := &domain.Attempt{
		UserID:       userID,
		IssuedWordID: w.ID,
		Mode:         domain.ModeInfinite,
		Guesses:      []domain.Guess{},
		Status:       domain.GamePlaying,
	}
	if err := repo.CreateAttempt(ctx, s.DB, a); err != nil {
		// Issued words are permanent, so the word is lost to the pool.
		observability.OrphanedWords.Inc()
		log.Error().Err(err).
			Str("issued_word_id", w.ID).
			Str("owner_id", userID).
			Msg("infinite word issued without attempt")
		return nil, err
	}
	a.IssuedWord = *w
	return a, nil
}

// ListInfinite returns a page of the user's sessions, newest first, and the
// total count.
func (s *GameService) ListInfinite(ctx context.Context, userID string, page, pageSize int) ([]domain.Attempt, int64, error) {
	ctx, span := s.tracer().Start(ctx, "ListInfinite",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	total, err := repo.CountAttempts(ctx, s.DB, userID, domain.ModeInfinite)
	if err != nil {
		return nil, 0, err
	}
	items, err := repo.ListAttemptsPage(ctx, s.DB, userID, domain.ModeInfinite, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetInfinite returns the user's session on issuedWordID with IssuedWord
// populated.
func (s *GameService) GetInfinite(ctx context.Context, userID, issuedWordID string) (*domain.Attempt, error) {
	w, err := s.ownedInfinite(ctx, userID, issuedWordID)
	if err != nil {
		return nil, err
	}
	a, err := s.GetAttempt(ctx, userID, w.ID)
	if err != nil {
		return nil, err
	}
	a.IssuedWord = *w
	return a, nil
}

// SaveInfinite replaces the session's progress with guesses. The stored
// guesses must be a prefix of the new ones, and status must be the one the
// guesses lead to.
func (s *GameService) SaveInfinite(ctx context.Context, userID, issuedWordID string, guesses []string, status domain.GameStatus) (*domain.Attempt, error) {
	ctx, span := s.tracer().Start(ctx, "SaveInfinite",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("issued_word.id", issuedWordID),
			attribute.Int("guesses", len(guesses)),
		),
	)
	defer span.End()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	w, err := s.ownedInfinite(ctx, userID, issuedWordID)
	if err != nil {
		return nil, err
	}
	a, err := s.GetAttempt(ctx, userID, w.ID)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, ErrAttemptFinalized
	}

	replayed, err := s.replay(ctx, w.Word, guesses, status)
	if err != nil {
		return nil, err
	}
	if !extends(a.Guesses, replayed) {
		return nil, fmt.Errorf("%w: saved guesses cannot be rewritten", ErrInvalidInput)
	}

	prev := a.AttemptCount
	a.Guesses = replayed
	a.AttemptCount = len(replayed)
	a.Status = status
	if status.Terminal() {
		done := s.now()
		a.CompletedAt = &done
	}
	if err := repo.UpdateAttemptProgress(ctx, s.DB, a, prev); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, s.lostSave(ctx, userID, w.ID)
		}
		return nil, err
	}
	a.IssuedWord = *w
	return a, nil
}

// DeleteInfinite removes the user's session on issuedWordID. The issued word
// is kept, so the secret is never handed out again.
func (s *GameService) DeleteInfinite(ctx context.Context, userID, issuedWordID string) error {
	ctx, span := s.tracer().Start(ctx, "DeleteInfinite",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("issued_word.id", issuedWordID),
		),
	)
	defer span.End()

	w, err := s.ownedInfinite(ctx, userID, issuedWordID)
	if err != nil {
		return err
	}
	if err := repo.DeleteAttempt(ctx, s.DB, userID, w.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAttemptNotFound
		}
		return err
	}
	log.Info().Str("user_id", userID).Str("issued_word_id", w.ID).Msg("infinite session deleted")
	return nil
}

// lostSave explains a guarded update that matched no row.
func (s *GameService) lostSave(ctx context.Context, userID, issuedWordID string) error {
	cur, err := s.GetAttempt(ctx, userID, issuedWordID)
	if err != nil {
		return err
	}
	if cur.Status.Terminal() {
		return ErrAttemptFinalized
	}
	return ErrAttemptStale
}

func (s *GameService) ownedInfinite(ctx context.Context, userID, issuedWordID string) (*domain.IssuedWord, error) {
	w, err := s.IssuedWord(ctx, issuedWordID)
	if err != nil {
		return nil, err
	}
	if w.Mode != domain.ModeInfinite || w.OwnerID != userID {
		return nil, ErrIssuedWordNotFound
	}
	return w, nil
}

// extends reports whether prev is a prefix of next, comparing words.
func extends(prev, next []domain.Guess) bool {
	if len(prev) > len(next) {
		return false
	}
	for i := range prev {
		if prev[i].Word != next[i].Word {
			return false
		}
	}
	return true
}
