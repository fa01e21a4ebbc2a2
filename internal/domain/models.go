// Package domain defines the persistence models for issued words and game
// attempts, plus the small value types (letter statuses, game statuses,
// guesses) shared by the engine, the repository layer and the HTTP layer.
// Models are mapped with GORM.
package domain

import (
	"time"
)

// LetterStatus is the per-letter verdict for a guess.
type LetterStatus string

const (
	StatusCorrect LetterStatus = "correct"
	StatusPresent LetterStatus = "present"
	StatusAbsent  LetterStatus = "absent"
)

// GameStatus is the lifecycle state of an attempt.
type GameStatus string

const (
	GamePlaying GameStatus = "playing"
	GameWon     GameStatus = "won"
	GameLost    GameStatus = "lost"
)

// Terminal reports whether the game has finished.
func (s GameStatus) Terminal() bool { return s == GameWon || s == GameLost }

// Valid reports whether s is one of the known statuses.
func (s GameStatus) Valid() bool { return s == GamePlaying || s.Terminal() }

// Mode tells how an issued word was bound to its key.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModeInfinite Mode = "infinite"
)

// Guess is a submitted word together with its evaluation.
type Guess struct {
	Word     string         `json:"word"`
	Statuses []LetterStatus `json:"statuses"`
}

// IssuedWord is a secret word bound to an issuance key. Rows are created
// once and never updated or deleted.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Key: issuance key, a calendar date (daily) or a session id (infinite); unique.
//   - Word: canonical form; unique across every issued word ever created.
//   - Display: accented, uppercased form as found in the dictionary.
//   - Definition: enrichment text or a placeholder.
//   - OwnerID: owning user for infinite sessions, empty for daily words.
type IssuedWord struct {
	ID         string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Key        string    `json:"key"        gorm:"type:varchar(64);not null;uniqueIndex:ux_issued_words_key"`
	Mode       Mode      `json:"mode"       gorm:"type:varchar(16);not null;index;check:mode IN ('daily','infinite')"`
	Word       string    `json:"-"          gorm:"type:varchar(32);not null;uniqueIndex:ux_issued_words_word"`
	Display    string    `json:"-"          gorm:"type:varchar(64);not null"`
	Definition string    `json:"-"          gorm:"type:text;not null;default:''"`
	OwnerID    string    `json:"owner_id,omitempty" gorm:"type:varchar(64);index:idx_issued_words_owner"`
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_issued_words_owner"`
}

// TableName returns the database table name for IssuedWord.
func (IssuedWord) TableName() string { return "issued_words" }

// Attempt is a user's game on one issued word. At most one attempt exists
// per (user_id, issued_word_id). Daily attempts are inserted once in a
// terminal state; infinite attempts are updated while playing and frozen
// once terminal.
type Attempt struct {
	ID           string     `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID       string     `json:"user_id"        gorm:"type:varchar(64);not null;uniqueIndex:ux_attempts_user_word,priority:1;index:idx_attempts_user_completed,priority:1"`
	IssuedWordID string     `json:"issued_word_id" gorm:"type:char(36);not null;uniqueIndex:ux_attempts_user_word,priority:2"`
	Mode         Mode       `json:"mode"           gorm:"type:varchar(16);not null;check:mode IN ('daily','infinite')"`
	Guesses      []Guess    `json:"guesses"        gorm:"type:text;serializer:json;not null"`
	Status       GameStatus `json:"status"         gorm:"type:varchar(16);not null;check:status IN ('playing','won','lost')"`
	AttemptCount int        `json:"attempts"       gorm:"not null;default:0"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" gorm:"index:idx_attempts_user_completed,priority:2"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// IssuedWord is the word being played.
	IssuedWord IssuedWord `json:"-" gorm:"foreignKey:IssuedWordID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Attempt.
func (Attempt) TableName() string { return "attempts" }

// Stats is derived from a user's completed attempts; it is never stored.
type Stats struct {
	Played        int   `json:"played"`
	Wins          int   `json:"wins"`
	WinRate       int   `json:"win_rate"`
	CurrentStreak int   `json:"current_streak"`
	MaxStreak     int   `json:"max_streak"`
	Distribution  []int `json:"distribution"` // Distribution[k-1] = wins in exactly k guesses
}
