// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable: clients branch on them, the
// message is for humans. Generic codes mirror HTTP status semantics; game
// codes name the engine condition that caused the rejection.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_in_lexicon",
//	  "message": "word not in lexicon"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Game-specific:
	ErrCodeInvalidGuess       = "invalid_guess"
	ErrCodeNotInLexicon       = "not_in_lexicon"
	ErrCodeInvalidAttempt     = "invalid_attempt"
	ErrCodeAttemptFinalized   = "attempt_finalized"
	ErrCodeLexiconExhausted   = "lexicon_exhausted"
	ErrCodeLexiconUnavailable = "lexicon_unavailable"
)
