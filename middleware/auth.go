package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"notifyhub/auth"

	"github.com/gin-gonic/gin"
)

// NotifyKeyHeader carries the shared ingestion secret, distinct from the
// operator bearer token.
const NotifyKeyHeader = "X-Project-Key"

// OperatorRequired gates operator-facing endpoints behind a valid bearer token.
func OperatorRequired(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		username, err := tokens.Verify(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
			c.Abort()
			return
		}

		// Store username in context for handlers to use
		c.Set("username", username)

		c.Next()
	}
}

// NotifyKeyRequired gates the ingestion endpoint behind the shared notify key.
func NotifyKeyRequired(notifyKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(NotifyKeyHeader)

		if subtle.ConstantTimeCompare([]byte(presented), []byte(notifyKey)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid project key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
