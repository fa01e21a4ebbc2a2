package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-wordle-backend/internal/domain"
	"github.com/tbourn/go-wordle-backend/internal/lexicon"
	"github.com/tbourn/go-wordle-backend/internal/repo"
)

var testWords = []string{"abbey", "babes", "crane", "llama", "alloy", "robot", "speed", "abide", "école"}

type staticLexicon struct {
	lex  *lexicon.Lexicon
	norm *lexicon.Normalizer
	err  error
}

func (s staticLexicon) Get(context.Context) (*lexicon.Lexicon, error) { return s.lex, s.err }
func (s staticLexicon) Normalizer() *lexicon.Normalizer                { return s.norm }

func newLexicon(words ...string) staticLexicon {
	n := lexicon.NewNormalizer()
	return staticLexicon{lex: lexicon.FromStrings(n, words), norm: n}
}

func failingLexicon(err error) staticLexicon {
	return staticLexicon{norm: lexicon.NewNormalizer(), err: err}
}

// newServiceDB opens a per-test in-memory database with the game schema.
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// newFileDB opens a WAL database on disk for tests with concurrent writers.
func newFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	db.Logger = logger.Default.LogMode(logger.Silent)
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func firstPick(_ string, pool []string) string { return pool[0] }

func newTestScheduler(db *gorm.DB, lex LexiconSource) *Scheduler {
	s := NewScheduler(db, lex, nil, 0, 3)
	s.DailyPick = firstPick
	s.InfinitePick = firstPick
	return s
}

func newTestGame(t *testing.T, db *gorm.DB, lex LexiconSource) *GameService {
	t.Helper()
	g := NewGameService(db, lex, newTestScheduler(db, lex), 6, time.UTC)
	g.Now = func() time.Time { return time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC) }
	return g
}

func issuedCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	n, err := repo.CountIssuedWords(context.Background(), db)
	if err != nil {
		t.Fatalf("CountIssuedWords: %v", err)
	}
	return n
}

func statuses(s string) []domain.LetterStatus {
	out := make([]domain.LetterStatus, 0, len(s))
	for _, r := range s {
		switch r {
		case 'c':
			out = append(out, domain.StatusCorrect)
		case 'p':
			out = append(out, domain.StatusPresent)
		default:
			out = append(out, domain.StatusAbsent)
		}
	}
	return out
}
