// Package handlers provides the HTTP handlers of the game API.
//
// This file defines the response helpers shared by every endpoint:
//   - fail() writes the ErrorResponse envelope and logs 5xx with the
//     request-scoped logger
//   - writeError() maps service errors to a status and a stable code
//   - ok() writes JSON success bodies
//
// Example error response:
//
//	HTTP/1.1 422 Unprocessable Entity
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_in_lexicon",
//	  "message": "word not in lexicon"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wordle-backend/internal/http/middleware"
	"github.com/tbourn/go-wordle-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_in_lexicon"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"word not in lexicon"`
}

// fail aborts the request with an ErrorResponse. Server errors (>= 500) are
// logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), used by the router fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// errorMapping binds a service error to its HTTP status and code. Order
// matters: the specific input errors come before their ErrInvalidInput parent.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrInvalidGuessLength, http.StatusBadRequest, ErrCodeInvalidGuess},
	{services.ErrInvalidGuessChars, http.StatusBadRequest, ErrCodeInvalidGuess},
	{services.ErrInvalidOutcome, http.StatusUnprocessableEntity, ErrCodeInvalidAttempt},
	{services.ErrTooManyGuesses, http.StatusUnprocessableEntity, ErrCodeInvalidAttempt},
	{services.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrNotInLexicon, http.StatusUnprocessableEntity, ErrCodeNotInLexicon},
	{services.ErrEmptyLexicon, http.StatusServiceUnavailable, ErrCodeLexiconUnavailable},
	{services.ErrLexiconExhausted, http.StatusServiceUnavailable, ErrCodeLexiconExhausted},
	{services.ErrIssueContention, http.StatusServiceUnavailable, ErrCodeConflict},
	{services.ErrIssuedWordNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrAttemptNotFound, http.StatusNotFound, ErrCodeNotFound},
	{services.ErrAttemptExists, http.StatusConflict, ErrCodeConflict},
	{services.ErrAttemptFinalized, http.StatusConflict, ErrCodeAttemptFinalized},
	{services.ErrAttemptStale, http.StatusConflict, ErrCodeConflict},
}

// writeError maps err to the error envelope. Unknown errors are a 500 whose
// message does not leak internals.
func writeError(c *gin.Context, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			if m.status == http.StatusServiceUnavailable {
				c.Header("Retry-After", "30")
			}
			fail(c, m.status, m.code, err.Error())
			return
		}
	}
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
