package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// validates access tokens and adds user info to context.
// The token comes from the HTTP-only access cookie set at login;
// a Bearer header is accepted as a fallback for non-browser clients.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is required"})
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// extracts user_id from context after Middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")

	if !exists {
		return "", false
	}

	return userID.(string), true
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")

	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
