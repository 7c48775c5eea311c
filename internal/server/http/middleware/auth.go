package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier checks API bearer tokens.
type TokenVerifier interface {
	Enabled() bool
	Verify(token string) bool
}

// TokenRequired rejects requests without a valid bearer token. It is a no-op
// when the verifier has no token configured.
func TokenRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifier.Enabled() {
			c.Next()
			return
		}
		token := extractToken(c)
		if token == "" || !verifier.Verify(token) {
			c.Header("WWW-Authenticate", `Bearer realm="checkin"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
