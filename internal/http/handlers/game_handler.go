// Game HTTP handlers.
//
// This file exposes the daily game endpoints:
//   - GET  /daily                (today's word, plus the caller's attempt)
//   - GET  /words/{id}           (issued word public view)
//   - POST /words/{id}/guesses   (score one guess)
//   - GET  /words/{id}/attempt   (caller's attempt)
//   - POST /words/{id}/attempt   (record a finished game, idempotent)
//   - GET  /stats                (caller statistics, ETag support)
//
// Handlers are transport-thin: they validate input shape, call the game
// service and translate results into HTTP responses. The secret word of an
// issued word is only revealed once the caller's attempt on it is finished.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-wordle-backend/internal/domain"
	"github.com/tbourn/go-wordle-backend/internal/http/middleware"
	"github.com/tbourn/go-wordle-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// GameService defines the daily game operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type GameService interface {
	// Daily resolves today's issued word.
	Daily(ctx context.Context) (*domain.IssuedWord, error)
	// IssuedWord returns an issued word by id.
	IssuedWord(ctx context.Context, id string) (*domain.IssuedWord, error)
	// EvaluateGuess scores a guess against an issued word.
	EvaluateGuess(ctx context.Context, issuedWordID, guess string) (*domain.Guess, bool, error)
	// GetAttempt returns the caller's attempt on an issued word.
	GetAttempt(ctx context.Context, userID, issuedWordID string) (*domain.Attempt, error)
	// RecordAttempt stores a finished game after replaying its guesses.
	RecordAttempt(ctx context.Context, userID, issuedWordID string, guesses []string, status domain.GameStatus) (*domain.Attempt, error)
	// Stats aggregates the caller's finished daily games.
	Stats(ctx context.Context, userID string) (domain.Stats, error)
	// StatsVersion identifies the ledger state Stats is computed from.
	StatsVersion(ctx context.Context, userID string) (int64, *time.Time, error)
}

// InfiniteService defines infinite mode session operations.
type InfiniteService interface {
	// StartInfinite issues a new private word and opens a playing attempt.
	StartInfinite(ctx context.Context, userID string) (*domain.Attempt, error)
	// ListInfinite returns a page of the caller's sessions and the total count.
	ListInfinite(ctx context.Context, userID string, page, pageSize int) ([]domain.Attempt, int64, error)
	// GetInfinite returns one of the caller's sessions.
	GetInfinite(ctx context.Context, userID, issuedWordID string) (*domain.Attempt, error)
	// SaveInfinite replaces a session's progress.
	SaveInfinite(ctx context.Context, userID, issuedWordID string, guesses []string, status domain.GameStatus) (*domain.Attempt, error)
	// DeleteInfinite drops one of the caller's sessions; the word stays issued.
	DeleteInfinite(ctx context.Context, userID, issuedWordID string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the game API.
type Handlers struct {
	game     GameService
	infinite InfiniteService
}

// New constructs a Handlers instance bound to the given services.
func New(game GameService, infinite InfiniteService) *Handlers {
	return &Handlers{game: game, infinite: infinite}
}

// userID returns the caller id stored by the Identity middleware, falling
// back to the X-User-ID header (handler tests) and finally "anonymous".
func userID(c *gin.Context) string {
	if id := middleware.UserIDFrom(c); id != "" {
		return id
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader(middleware.HeaderUserID)); h != "" {
			return h
		}
	}
	return "anonymous"
}

//
// DTOs
//

// WordView is the public view of an issued word. Solution, Display and
// Definition are only present once the caller's attempt is finished.
type WordView struct {
	ID         string      `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Key        string      `json:"key" example:"2024-05-01"`
	Mode       domain.Mode `json:"mode" example:"daily"`
	Length     int         `json:"length" example:"5"`
	CreatedAt  time.Time   `json:"created_at"`
	Solution   string      `json:"solution,omitempty" example:"ECOLE"`
	Display    string      `json:"display,omitempty" example:"ÉCOLE"`
	Definition string      `json:"definition,omitempty" example:"(ÉCOLE) Établissement où l'on enseigne."`
}

// GameResponse pairs a word with the caller's attempt on it, if any.
type GameResponse struct {
	Word    WordView        `json:"word"`
	Attempt *domain.Attempt `json:"attempt,omitempty"`
}

// GuessRequest is the JSON payload for scoring one guess.
type GuessRequest struct {
	// Guess is the submitted word; accents and case are normalized.
	Guess string `json:"guess" binding:"required" example:"crane"`
}

// GuessResponse is the evaluation of one guess.
type GuessResponse struct {
	Guess    string                `json:"guess" example:"CRANE"`
	Statuses []domain.LetterStatus `json:"statuses"`
	Won      bool                  `json:"won"`
}

// AttemptRequest is the JSON payload for recording or saving a game.
type AttemptRequest struct {
	// Guesses are the submitted words, in order.
	Guesses []string `json:"guesses" example:"crane,abbey"`
	// Status is "won" or "lost" ("playing" is also accepted when saving an
	// infinite session).
	Status domain.GameStatus `json:"status" binding:"required" example:"won"`
}

// maxAttemptRequestGuesses bounds the guesses accepted before the service
// enforces the configured attempt cap.
const maxAttemptRequestGuesses = 32

// maxGuessBytes bounds one guess before normalization.
const maxGuessBytes = 64

//
// Helpers
//

// wordView renders w for a caller whose attempt is a (nil when none).
func wordView(w *domain.IssuedWord, a *domain.Attempt) WordView {
	v := WordView{
		ID:        w.ID,
		Key:       w.Key,
		Mode:      w.Mode,
		Length:    utf8.RuneCountInString(w.Word),
		CreatedAt: w.CreatedAt,
	}
	if a != nil && a.Status.Terminal() {
		v.Solution = w.Word
		v.Display = w.Display
		v.Definition = w.Definition
	}
	return v
}

// parseWordID reads the :id path param, which must be a UUID.
func parseWordID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "word id must be a UUID")
		return "", false
	}
	return id, true
}

// visibleWord loads an issued word the caller may play. Infinite words of
// other users are reported as not found.
func (h *Handlers) visibleWord(ctx context.Context, uid, id string) (*domain.IssuedWord, error) {
	w, err := h.game.IssuedWord(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.Mode == domain.ModeInfinite && w.OwnerID != uid {
		return nil, services.ErrIssuedWordNotFound
	}
	return w, nil
}

// callerAttempt returns the caller's attempt on issuedWordID or nil.
func (h *Handlers) callerAttempt(ctx context.Context, uid, issuedWordID string) (*domain.Attempt, error) {
	a, err := h.game.GetAttempt(ctx, uid, issuedWordID)
	if errors.Is(err, services.ErrAttemptNotFound) {
		return nil, nil
	}
	return a, err
}

// bindAttempt decodes and bounds an AttemptRequest.
func bindAttempt(c *gin.Context) (AttemptRequest, bool) {
	var req AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "guesses and status required")
		return req, false
	}
	if len(req.Guesses) > maxAttemptRequestGuesses {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("at most %d guesses", maxAttemptRequestGuesses))
		return req, false
	}
	for _, g := range req.Guesses {
		if len(g) > maxGuessBytes {
			fail(c, http.StatusBadRequest, ErrCodeInvalidGuess, "guess too long")
			return req, false
		}
	}
	return req, true
}

//
// Handlers
//

// Daily godoc
// @ID          getDaily
// @Summary     Today's word
// @Description Resolves the word of the day and the caller's attempt on it, if any.
// @Description The solution is only included once that attempt is finished.
// @Tags        Game
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     200  {object}  handlers.GameResponse
// @Failure     503  {object}  handlers.ErrorResponse  "Lexicon unavailable or exhausted"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /daily [get]
func (h *Handlers) Daily(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	w, err := h.game.Daily(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	a, err := h.callerAttempt(ctx, uid, w.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, GameResponse{Word: wordView(w, a), Attempt: a})
}

// GetWord godoc
// @ID          getWord
// @Summary     Get an issued word
// @Description Returns the public view of an issued word.
// @Tags        Game
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Issued word ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.WordView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Word not found"
// @Router      /words/{id} [get]
func (h *Handlers) GetWord(c *gin.Context) {
	id, okID := parseWordID(c)
	if !okID {
		return
	}
	ctx := c.Request.Context()
	uid := userID(c)

	w, err := h.visibleWord(ctx, uid, id)
	if err != nil {
		writeError(c, err)
		return
	}
	a, err := h.callerAttempt(ctx, uid, w.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, wordView(w, a))
}

// PostGuess godoc
// @ID          postGuess
// @Summary     Score a guess
// @Description Validates the guess against the dictionary and returns per-letter statuses.
// @Tags        Game
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Issued word ID (UUID)"  format(uuid)
// @Param       body       body    handlers.GuessRequest  true  "Guess payload"
//
// @Success     200  {object}  handlers.GuessResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid guess"
// @Failure     404  {object}  handlers.ErrorResponse  "Word not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Word not in lexicon"
// @Failure     429  {object}  handlers.ErrorResponse  "Rate limited"
// @Failure     503  {object}  handlers.ErrorResponse  "Lexicon unavailable"
// @Router      /words/{id}/guesses [post]
func (h *Handlers) PostGuess(c *gin.Context) {
	id, okID := parseWordID(c)
	if !okID {
		return
	}
	var req GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "guess required")
		return
	}
	if len(req.Guess) > maxGuessBytes {
		fail(c, http.StatusBadRequest, ErrCodeInvalidGuess, "guess too long")
		return
	}
	ctx := c.Request.Context()

	if _, err := h.visibleWord(ctx, userID(c), id); err != nil {
		writeError(c, err)
		return
	}
	g, won, err := h.game.EvaluateGuess(ctx, id, req.Guess)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, GuessResponse{Guess: g.Word, Statuses: g.Statuses, Won: won})
}

// GetAttempt godoc
// @ID          getAttempt
// @Summary     Get the caller's attempt
// @Tags        Game
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Issued word ID (UUID)"  format(uuid)
//
// @Success     200  {object}  domain.Attempt
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No attempt"
// @Router      /words/{id}/attempt [get]
func (h *Handlers) GetAttempt(c *gin.Context) {
	id, okID := parseWordID(c)
	if !okID {
		return
	}
	a, err := h.game.GetAttempt(c.Request.Context(), userID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// PostAttempt godoc
// @ID          postAttempt
// @Summary     Record a finished game
// @Description Replays the guesses against the secret and records the attempt when the
// @Description claimed status matches. One record per user and word.
// @Description With an Idempotency-Key header, a retry returns the stored attempt
// @Description with `Idempotency-Replayed: true`.
// @Tags        Game
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       id               path    string  true  "Issued word ID (UUID)"  format(uuid)
// @Param       body             body    handlers.AttemptRequest  true  "Finished game"
//
// @Success     201  {object}  handlers.GameResponse  "Recorded"
// @Success     200  {object}  handlers.GameResponse  "Replayed"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Word not found"
// @Failure     409  {object}  handlers.ErrorResponse "Attempt already recorded"
// @Failure     422  {object}  handlers.ErrorResponse "Guesses do not support the status"
// @Router      /words/{id}/attempt [post]
func (h *Handlers) PostAttempt(c *gin.Context) {
	id, okID := parseWordID(c)
	if !okID {
		return
	}
	req, okReq := bindAttempt(c)
	if !okReq {
		return
	}
	ctx := c.Request.Context()
	uid := userID(c)

	w, err := h.visibleWord(ctx, uid, id)
	if err != nil {
		writeError(c, err)
		return
	}

	// Replay path: the key only gates it, attempts are unique per (user, word).
	if _, hasKey := middleware.GetIdempotencyKey(c); hasKey || middleware.IsReplay(c) {
		if prev, err := h.callerAttempt(ctx, uid, w.ID); err == nil && prev != nil && prev.Status.Terminal() {
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			ok(c, http.StatusOK, GameResponse{Word: wordView(w, prev), Attempt: prev})
			return
		}
	}

	a, err := h.game.RecordAttempt(ctx, uid, w.ID, req.Guesses, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, GameResponse{Word: wordView(w, a), Attempt: a})
}

// GetStats godoc
// @ID          getStats
// @Summary     Caller statistics
// @Description Aggregates the caller's finished daily games. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Stats
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"stats:user123:3:1714564800\")
//
// @Success     200  {object} domain.Stats
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /stats [get]
func (h *Handlers) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	// ETag pre-check (best effort).
	if count, latest, err := h.game.StatsVersion(ctx, uid); err == nil {
		var ts int64
		if latest != nil {
			ts = latest.Unix()
		}
		etag := fmt.Sprintf(`W/"stats:%s:%d:%d"`, uid, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	st, err := h.game.Stats(ctx, uid)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, st)
}
