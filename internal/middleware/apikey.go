package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
)

const APIKeyHeader = "apikey"

// RequireAPIKey checks the apikey header (or a Bearer token) against key.
// An empty key disables the check.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if !keyMatches(presentedKey(c), key) {
			abort(c, httperr.ErrUnauthorized("invalid_api_key"))
			return
		}
		c.Next()
	}
}

// RequireServiceKey is RequireAPIKey without the open default: with no key
// configured every request is refused.
func RequireServiceKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" || !keyMatches(presentedKey(c), key) {
			abort(c, httperr.ErrForbidden("invalid_service_key"))
			return
		}
		c.Next()
	}
}

func presentedKey(c *gin.Context) string {
	if k := c.GetHeader(APIKeyHeader); k != "" {
		return k
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return auth[7:]
	}
	return ""
}

func keyMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
