package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-wordle-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func newGameDB(t *testing.T) *gorm.DB {
	t.Helper()
	return newTestDB(t, &domain.IssuedWord{}, &domain.Attempt{})
}

func seedWord(t *testing.T, db *gorm.DB, key, word string, mode domain.Mode) *domain.IssuedWord {
	t.Helper()
	w := &domain.IssuedWord{Key: key, Mode: mode, Word: word, Display: word}
	if err := CreateIssuedWord(context.Background(), db, w); err != nil {
		t.Fatalf("seed word: %v", err)
	}
	return w
}

func day(n int) time.Time {
	return time.Date(2024, time.May, n, 12, 0, 0, 0, time.UTC)
}
