package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kadcom/pphc/internal/service"
)

const (
	ContextKeySubject = "subject"
	ContextKeyClaims  = "claims"
)

// AuthMiddleware returns Gin middleware that validates bearer tokens and
// injects the token subject. A nil TokenService lets every request through.
func AuthMiddleware(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetSubject extracts the token subject from the Gin context.
func GetSubject(c *gin.Context) string {
	return c.GetString(ContextKeySubject)
}
