// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for IssuedWord.
//
// Issued words are insert-only. CreateIssuedWord is the atomic
// "insert if key absent" primitive the scheduler relies on: both the key and
// the canonical word carry unique indexes, and a violation of either is
// reported as ErrDuplicate.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-wordle-backend/internal/domain"
)

// CreateIssuedWord inserts w, filling ID and CreatedAt when empty.
func CreateIssuedWord(ctx context.Context, db *gorm.DB, w *domain.IssuedWord) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(w).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetIssuedWordByKey returns the word bound to key or ErrNotFound.
func GetIssuedWordByKey(ctx context.Context, db *gorm.DB, key string) (*domain.IssuedWord, error) {
	var w domain.IssuedWord
	err := db.WithContext(ctx).Where("key = ?", key).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetIssuedWord returns the word with the given id or ErrNotFound.
func GetIssuedWord(ctx context.Context, db *gorm.DB, id string) (*domain.IssuedWord, error) {
	var w domain.IssuedWord
	err := db.WithContext(ctx).Where("id = ?", id).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// IssuedWords returns the canonical form of every word ever issued.
func IssuedWords(ctx context.Context, db *gorm.DB) ([]string, error) {
	var words []string
	err := db.WithContext(ctx).Model(&domain.IssuedWord{}).Pluck("word", &words).Error
	return words, err
}

// CountIssuedWords returns how many words have been issued in total.
func CountIssuedWords(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.IssuedWord{}).Count(&n).Error
	return n, err
}
