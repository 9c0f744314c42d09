package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"office-log-backend/internal/auth"
)

// Context keys set by RequireAuth.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
)

// RequireAuth rejects requests without a valid bearer token. Missing,
// malformed and expired tokens all get the same 401.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		claims, err := auth.ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}
