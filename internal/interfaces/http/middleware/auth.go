// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gamevault/game-library-backend/internal/pkg/apperror"
	"github.com/gamevault/game-library-backend/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

const (
	contextUserID   = "user_id"
	contextUsername = "username"
	contextRole     = "role"
	contextClaims   = "token_claims"
)

// AuthMiddleware requires a valid access token and stores its claims in the context
func AuthMiddleware(tokens *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authorization header required")
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			abortWith(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := tokens.ValidateAccessToken(tokenString)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid or expired token")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware stores claims when a valid token is present and
// lets anonymous requests through otherwise
func OptionalAuthMiddleware(tokens *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.Next()
			return
		}

		if claims, err := tokens.ValidateAccessToken(tokenString); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// AdminMiddleware ensures the authenticated user is an admin.
// It must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserIDFromContext(c); !ok {
			abortWith(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication required")
			return
		}

		if !IsAdminFromContext(c) {
			abortWith(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			return
		}

		c.Next()
	}
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(contextUserID, claims.UserID)
	c.Set(contextUsername, claims.Username)
	c.Set(contextRole, claims.Role)
	c.Set(contextClaims, claims)
}

func abortWith(c *gin.Context, status int, code apperror.Code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(contextUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUsernameFromContext extracts the username from gin context
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	return getString(c, contextUsername)
}

// IsAdminFromContext checks if user is admin from gin context
func IsAdminFromContext(c *gin.Context) bool {
	claims, exists := c.Get(contextClaims)
	if !exists {
		return false
	}
	tc, ok := claims.(*auth.Claims)
	return ok && tc.IsAdmin()
}

func getString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
