// Infinite mode HTTP handlers.
//
// This file exposes REST endpoints for private practice sessions:
//   - POST /infinite        (start a session)
//   - GET  /infinite        (list sessions, paginated, newest first)
//   - GET  /infinite/{id}   (get a session)
//   - PUT  /infinite/{id}   (save progress)
//   - DELETE /infinite/{id} (delete a session)
//
// A session is identified by the id of its issued word. Sessions of other
// users are reported as not found.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-wordle-backend/internal/domain"
	"github.com/tbourn/go-wordle-backend/internal/utils"
)

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListSessionsResponse wraps a page of sessions and pagination information.
type ListSessionsResponse struct {
	Sessions   []GameResponse `json:"sessions"`
	Pagination Pagination     `json:"pagination"`
}

// sessionView renders an attempt with its preloaded issued word.
func sessionView(a *domain.Attempt) GameResponse {
	return GameResponse{Word: wordView(&a.IssuedWord, a), Attempt: a}
}

// StartInfinite godoc
// @ID          startInfinite
// @Summary     Start an infinite session
// @Description Issues a new private word (never issued before) and opens a playing attempt.
// @Tags        Infinite
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
//
// @Success     201  {object}  handlers.GameResponse
// @Failure     503  {object}  handlers.ErrorResponse  "Lexicon unavailable or exhausted"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /infinite [post]
func (h *Handlers) StartInfinite(c *gin.Context) {
	a, err := h.infinite.StartInfinite(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, sessionView(a))
}

// ListInfinite godoc
// @ID          listInfinite
// @Summary     List infinite sessions (paginated)
// @Tags        Infinite
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       page       query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListSessionsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /infinite [get]
func (h *Handlers) ListInfinite(c *gin.Context) {
	page, pageSize := utils.ClampPage(c.Query("page"), c.Query("page_size"), 20, 100)

	items, total, err := h.infinite.ListInfinite(c.Request.Context(), userID(c), page, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	sessions := make([]GameResponse, 0, len(items))
	for i := range items {
		sessions = append(sessions, sessionView(&items[i]))
	}
	totalPages := utils.TotalPages(total, pageSize)
	ok(c, http.StatusOK, ListSessionsResponse{
		Sessions: sessions,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetInfinite godoc
// @ID          getInfinite
// @Summary     Get an infinite session
// @Tags        Infinite
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Session word ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.GameResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /infinite/{id} [get]
func (h *Handlers) GetInfinite(c *gin.Context) {
	id, okID := parseWordID(c)
	if !okID {
		return
	}
	a, err := h.infinite.GetInfinite(c.Request.Context(), userID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, sessionView(a))
}

// SaveInfinite godoc
// @ID          saveInfinite
// @Summary     Save infinite session progress
// @Description Replaces the saved guesses. Saved guesses cannot be rewritten and a
// @Description finished session is frozen.
// @Tags        Infinite
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Session word ID (UUID)"  format(uuid)
// @Param       body       body    handlers.AttemptRequest  true  "Progress snapshot"
//
// @Success     200  {object}  handlers.GameResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Session finished or changed concurrently"
// @Failure     422  {object}  handlers.ErrorResponse  "Guesses do not support the status"
// @Router      /infinite/{id} [put]
func (h *Handlers) SaveInfinite(c *gin.Context) {
	id, okID := parseWordID(c)
	if !okID {
		return
	}
	req, okReq := bindAttempt(c)
	if !okReq {
		return
	}
	a, err := h.infinite.SaveInfinite(c.Request.Context(), userID(c), id, req.Guesses, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, sessionView(a))
}

// DeleteInfinite godoc
// @ID          deleteInfinite
// @Summary     Delete an infinite session
// @Description Drops the caller's attempt. The word stays issued and is never handed out again.
// @Tags        Infinite
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       id         path    string  true  "Session word ID (UUID)"  format(uuid)
//
// @Success     204  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Session not found"
// @Router      /infinite/{id} [delete]
func (h *Handlers) DeleteInfinite(c *gin.Context) {
	id, okID := parseWordID(c)
	if !okID {
		return
	}
	if err := h.infinite.DeleteInfinite(c.Request.Context(), userID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
