// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wordle-backend/internal/domain"
)

// AttemptsStats returns the number of completed attempts a user has in mode
// and the latest completion time among them (nil when there are none).
func AttemptsStats(ctx context.Context, db *gorm.DB, userID string, mode domain.Mode) (count int64, latest *time.Time, err error) {
	q := db.WithContext(ctx).
		Model(&domain.Attempt{}).
		Where("user_id = ? AND mode = ? AND completed_at IS NOT NULL", userID, mode)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest completed_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CompletedAt time.Time
	}
	if err = q.Select("completed_at").Order("completed_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CompletedAt, nil
}
