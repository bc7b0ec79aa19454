package middleware

import (
	"net/http"
	"strings"

	"gymdesk/internal/common"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates an access token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth returns middleware that validates a Bearer token on every request.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.Error(c, http.StatusUnauthorized, "missing Authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.Error(c, http.StatusUnauthorized, "invalid Authorization header")
			c.Abort()
			return
		}

		subject, err := verifier.Verify(parts[1])
		if err != nil {
			common.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("admin", subject)
		c.Next()
	}
}
