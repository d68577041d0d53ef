// internal/interfaces/http/middleware/cors.go
package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gin-gonic/gin"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing
func CORS(cfg config.SecurityConfig) gin.HandlerFunc {
	methods := strings.Join(cfg.CORSAllowedMethods, ", ")
	headers := strings.Join(append(slices.Clone(cfg.CORSAllowedHeaders), RequestIDHeader), ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if origin != "" && isOriginAllowed(origin, cfg.CORSAllowedOrigins) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Expose-Headers", RequestIDHeader)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isOriginAllowed checks if the origin is in the allowed list.
// Entries of the form *.example.com match any subdomain.
func isOriginAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if domain, ok := strings.CutPrefix(allowed, "*."); ok {
			if strings.HasSuffix(origin, "."+domain) {
				return true
			}
		}
	}
	return false
}
