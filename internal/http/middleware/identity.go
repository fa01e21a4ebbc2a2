// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller's identity. Authentication happens upstream
// (gateway or auth middleware); the engine only needs a stable user id, read
// from the Gin context or the X-User-ID header and stored under "userID".
package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderUserID carries the caller's user id when no auth layer sets it.
	HeaderUserID = "X-User-ID"

	ctxKeyUserID    = "userID"
	ctxKeyAnonymous = "userAnonymous"

	// maxUserIDLen matches the width of the user_id columns.
	maxUserIDLen = 64
)

var userIDRE = regexp.MustCompile(`^[A-Za-z0-9._@:\-]+$`)

// IdentityOptions configures Identity.
type IdentityOptions struct {
	// Required rejects requests without an identity with 401.
	Required bool
	// Anonymous is used when the identity is missing and not required.
	Anonymous string
}

// Identity stores the caller's user id in the context and adds it to the
// request-scoped logger. An id already set by upstream middleware wins over
// the header. Malformed ids are rejected with 400.
func Identity(opts IdentityOptions) gin.HandlerFunc {
	anon := opts.Anonymous
	if anon == "" {
		anon = "anonymous"
	}
	return func(c *gin.Context) {
		if id := UserIDFrom(c); id != "" {
			c.Next()
			return
		}
		id := strings.TrimSpace(c.GetHeader(HeaderUserID))
		switch {
		case id == "" && opts.Required:
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing "+HeaderUserID)
			return
		case id == "":
			id = anon
			c.Set(ctxKeyAnonymous, true)
		case len(id) > maxUserIDLen || !userIDRE.MatchString(id):
			abortJSON(c, http.StatusBadRequest, "bad_request", "invalid "+HeaderUserID)
			return
		}
		c.Set(ctxKeyUserID, id)
		l := LoggerFrom(c).With().Str("user_id", id).Logger()
		c.Set(loggerKey, &l)
		c.Next()
	}
}

// IsAnonymous reports whether Identity fell back to the anonymous id.
func IsAnonymous(c *gin.Context) bool {
	return c.GetBool(ctxKeyAnonymous)
}

// UserIDFrom returns the user id stored by Identity or an auth layer, or "".
func UserIDFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// abortJSON writes the standard error envelope and stops the chain.
func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}
