// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the attempt ledger.
//
// Each (user_id, issued_word_id) pair has at most one attempt row, enforced
// by a unique index. Daily attempts are inserted once in a terminal state;
// infinite attempts are inserted as "playing" and advanced with
// UpdateAttemptProgress until they become terminal.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-wordle-backend/internal/domain"
)

// CreateAttempt inserts a, filling ID and timestamps when empty. A second
// attempt for the same user and word yields ErrDuplicate.
func CreateAttempt(ctx context.Context, db *gorm.DB, a *domain.Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if a.Guesses == nil {
		a.Guesses = []domain.Guess{}
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetAttempt returns the user's attempt on an issued word or ErrNotFound.
func GetAttempt(ctx context.Context, db *gorm.DB, userID, issuedWordID string) (*domain.Attempt, error) {
	var a domain.Attempt
	err := db.WithContext(ctx).
		Where("user_id = ? AND issued_word_id = ?", userID, issuedWordID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAttemptProgress writes the guesses, status, count and completion time
// of a, but only while the stored row is still playing with prevCount
// guesses. ErrNotFound means no such row matched: it is missing, terminal,
// or another writer advanced it first.
func UpdateAttemptProgress(ctx context.Context, db *gorm.DB, a *domain.Attempt, prevCount int) error {
	res := db.WithContext(ctx).
		Model(a).
		Omit(clause.Associations).
		Where("status = ? AND attempt_count = ?", domain.GamePlaying, prevCount).
		Select("guesses", "status", "attempt_count", "completed_at", "updated_at").
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAttempt removes the user's attempt on an issued word. The issued word
// itself stays bound to its key. ErrNotFound means no attempt matched.
func DeleteAttempt(ctx context.Context, db *gorm.DB, userID, issuedWordID string) error {
	res := db.WithContext(ctx).
		Where("user_id = ? AND issued_word_id = ?", userID, issuedWordID).
		Delete(&domain.Attempt{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCompletedAttempts returns the user's terminal attempts in the given
// mode ordered by completion time, oldest first.
func ListCompletedAttempts(ctx context.Context, db *gorm.DB, userID string, mode domain.Mode) ([]domain.Attempt, error) {
	var out []domain.Attempt
	err := db.WithContext(ctx).
		Where("user_id = ? AND mode = ? AND status IN ? AND completed_at IS NOT NULL",
			userID, mode, []domain.GameStatus{domain.GameWon, domain.GameLost}).
		Order("completed_at ASC").
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// CountAttempts returns the number of attempts a user has in mode.
func CountAttempts(ctx context.Context, db *gorm.DB, userID string, mode domain.Mode) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Attempt{}).
		Where("user_id = ? AND mode = ?", userID, mode).
		Count(&n).Error
	return n, err
}

// ListAttemptsPage returns a page of the user's attempts in mode, newest
// first, with the issued word preloaded.
func ListAttemptsPage(ctx context.Context, db *gorm.DB, userID string, mode domain.Mode, offset, limit int) ([]domain.Attempt, error) {
	var out []domain.Attempt
	err := db.WithContext(ctx).
		Preload("IssuedWord").
		Where("user_id = ? AND mode = ?", userID, mode).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
