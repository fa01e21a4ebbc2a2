// Package services defines the game engine's business logic: word issuance,
// guess evaluation, the attempt ledger and statistics.
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"
)

// Input errors. Every one of them matches ErrInvalidInput with errors.Is.
var (
	// ErrInvalidInput is the parent of all rejected-input errors.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidGuessLength is returned when a guess does not have the word length.
	ErrInvalidGuessLength = fmt.Errorf("%w: guess has the wrong length", ErrInvalidInput)

	// ErrInvalidGuessChars is returned when a guess contains a letter outside the alphabet.
	ErrInvalidGuessChars = fmt.Errorf("%w: guess contains disallowed characters", ErrInvalidInput)

	// ErrInvalidOutcome is returned when a submitted status does not match the
	// replayed guesses.
	ErrInvalidOutcome = fmt.Errorf("%w: status does not match guesses", ErrInvalidInput)

	// ErrTooManyGuesses is returned when more guesses than allowed are submitted.
	ErrTooManyGuesses = fmt.Errorf("%w: too many guesses", ErrInvalidInput)
)

// Lexicon and issuance errors.
var (
	// ErrNotInLexicon is returned for a well-formed guess missing from the dictionary.
	ErrNotInLexicon = errors.New("word not in lexicon")

	// ErrEmptyLexicon is returned when the dictionary is missing, empty or failed
	// to load. Every guess is rejected in that state.
	ErrEmptyLexicon = errors.New("lexicon unavailable")

	// ErrLexiconExhausted is returned when every dictionary word has already
	// been issued. Words are never repeated.
	ErrLexiconExhausted = errors.New("lexicon exhausted")

	// ErrIssueContention is returned when issuance kept losing races for the
	// same word after the configured number of retries.
	ErrIssueContention = errors.New("word issuance did not converge")

	// ErrIssuedWordNotFound indicates that the issued word does not exist or
	// is not visible to the current user.
	ErrIssuedWordNotFound = errors.New("issued word not found")
)

// Ledger errors.
var (
	// ErrAttemptExists is returned when a finished attempt is recorded twice.
	ErrAttemptExists = errors.New("attempt already recorded")

	// ErrAttemptFinalized is returned when a terminal attempt would be modified.
	ErrAttemptFinalized = errors.New("attempt already finished")

	// ErrAttemptNotFound is returned when the user has no attempt on the word.
	ErrAttemptNotFound = errors.New("attempt not found")

	// ErrAttemptStale is returned when another save advanced the attempt
	// after it was read.
	ErrAttemptStale = errors.New("attempt changed concurrently")
)
