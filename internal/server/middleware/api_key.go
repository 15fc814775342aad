package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the shared secret when API_KEY is configured.
const APIKeyHeader = "x-api-key"

// WithAPIKey enforces the x-api-key header when key is non-empty.
func WithAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		if subtle.ConstantTimeCompare([]byte(c.GetHeader(APIKeyHeader)), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "unauthorized",
			})
			return
		}

		c.Next()
	}
}
