package repo

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/tbourn/go-wordle-backend/internal/domain"
)

func TestCreateIssuedWord_FillsDefaults(t *testing.T) {
	db := newGameDB(t)
	w := &domain.IssuedWord{Key: "2024-05-01", Mode: domain.ModeDaily, Word: "ABBEY", Display: "ABBEY"}
	if err := CreateIssuedWord(context.Background(), db, w); err != nil {
		t.Fatalf("CreateIssuedWord: %v", err)
	}
	if len(w.ID) != 36 || w.CreatedAt.IsZero() {
		t.Fatalf("defaults not filled: %+v", w)
	}
}

func TestCreateIssuedWord_DuplicateKeyOrWord(t *testing.T) {
	db := newGameDB(t)
	ctx := context.Background()
	seedWord(t, db, "2024-05-01", "ABBEY", domain.ModeDaily)

	sameKey := &domain.IssuedWord{Key: "2024-05-01", Mode: domain.ModeDaily, Word: "CRANE", Display: "CRANE"}
	if err := CreateIssuedWord(ctx, db, sameKey); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("same key: err=%v; want ErrDuplicate", err)
	}
	sameWord := &domain.IssuedWord{Key: "2024-05-02", Mode: domain.ModeDaily, Word: "ABBEY", Display: "ABBEY"}
	if err := CreateIssuedWord(ctx, db, sameWord); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("same word: err=%v; want ErrDuplicate", err)
	}
}

func TestCreateIssuedWord_OtherErrorPropagates(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	w := &domain.IssuedWord{Key: "k", Mode: domain.ModeDaily, Word: "ABBEY", Display: "ABBEY"}
	err := CreateIssuedWord(context.Background(), db, w)
	if err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected raw error for missing table, got %v", err)
	}
}

func TestGetIssuedWord_ByKeyAndID(t *testing.T) {
	db := newGameDB(t)
	ctx := context.Background()
	w := seedWord(t, db, "2024-05-01", "ABBEY", domain.ModeDaily)

	got, err := GetIssuedWordByKey(ctx, db, "2024-05-01")
	if err != nil || got.ID != w.ID || got.Word != "ABBEY" {
		t.Fatalf("GetIssuedWordByKey = %+v, %v", got, err)
	}
	got, err = GetIssuedWord(ctx, db, w.ID)
	if err != nil || got.Key != "2024-05-01" {
		t.Fatalf("GetIssuedWord = %+v, %v", got, err)
	}

	if _, err := GetIssuedWordByKey(ctx, db, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key: err=%v", err)
	}
	if _, err := GetIssuedWord(ctx, db, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id: err=%v", err)
	}
}

func TestIssuedWordsAndCount(t *testing.T) {
	db := newGameDB(t)
	ctx := context.Background()
	seedWord(t, db, "2024-05-01", "ABBEY", domain.ModeDaily)
	seedWord(t, db, "session-1", "CRANE", domain.ModeInfinite)

	words, err := IssuedWords(ctx, db)
	if err != nil {
		t.Fatalf("IssuedWords: %v", err)
	}
	sort.Strings(words)
	if len(words) != 2 || words[0] != "ABBEY" || words[1] != "CRANE" {
		t.Fatalf("IssuedWords = %v", words)
	}
	n, err := CountIssuedWords(ctx, db)
	if err != nil || n != 2 {
		t.Fatalf("CountIssuedWords = %d, %v", n, err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("UNIQUE constraint failed: issued_words.key"), true},
		{errors.New(`ERROR: duplicate key value violates unique constraint "ux_issued_words_word" (SQLSTATE 23505)`), true},
		{errors.New("constraint failed: UNIQUE constraint failed (2067)"), true},
		{errors.New("FOREIGN KEY constraint failed"), false},
	}
	for _, tc := range cases {
		if got := isUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("isUniqueViolation(%v) = %v; want %v", tc.err, got, tc.want)
		}
	}
}
