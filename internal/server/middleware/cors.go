package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin and method with credentials. The request origin is
// echoed back rather than "*" so browsers accept credentials. Browsers treat
// a wildcard Allow-Headers literally on credentialed requests, so the headers
// are listed.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept",
			"Accept-Language", "Content-Language", "Authorization",
			"Cache-Control", "X-Requested-With", "X-CSRF-Token", APIKeyHeader,
		},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	})
}
