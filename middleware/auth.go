package middleware

import (
	"net/http"
	"strings"

	"finai/services"

	"github.com/gin-gonic/gin"
)

// AuthCookie holds the session token for browser clients.
const AuthCookie = "finai_jwt"

// AuthRequired accepts a Bearer token or the session cookie and stores the
// caller's id and email on the context.
func AuthRequired(tokens *services.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, tokens) {
			c.Next()
		}
	}
}

// authenticate aborts with 401 and returns false when the request carries no
// valid token.
func authenticate(c *gin.Context, tokens *services.TokenIssuer) bool {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return false
	}

	claims, err := tokens.Parse(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return false
	}

	c.Set("userID", claims.UserID)
	c.Set("userEmail", claims.Email)
	return true
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(AuthCookie); err == nil {
		return cookie
	}
	return ""
}
