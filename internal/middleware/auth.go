// Package middleware provides gin middleware for authentication,
// request logging and metrics.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moneymate/backend/internal/auth"
)

const (
	// TokenCookie is the cookie that carries the session token.
	TokenCookie = "token"

	// userIDKey is the gin context key for the authenticated user ID.
	userIDKey = "user_id"
	// emailKey is the gin context key for the authenticated user's email.
	emailKey = "email"
)

// GetUserID extracts the authenticated user ID from the gin context.
// Returns empty string if not set.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Value(userIDKey).(string)
	return userID
}

// GetEmail extracts the authenticated user's email from the gin context.
// Returns empty string if not set.
func GetEmail(c *gin.Context) string {
	email, _ := c.Value(emailKey).(string)
	return email
}

// RequireAuth returns middleware that validates the token cookie and
// requires authentication. On success the user ID and email are added
// to the request context; otherwise the request is rejected with 401.
func RequireAuth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(TokenCookie)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   auth.ErrMissingToken.Error(),
			})
			return
		}

		claims, err := verifier.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   auth.ErrInvalidToken.Error(),
			})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}
