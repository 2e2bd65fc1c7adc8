package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type contextKey string

const operatorContextKey contextKey = "memorialOperator"

// ContextOperator represents the authenticated operator stored in the request context.
type ContextOperator struct {
	Email string
}

// Middleware validates bearer tokens and injects the authenticated operator.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := service.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(string(operatorContextKey), ContextOperator{Email: claims.Email})
		c.Next()
	}
}

// CurrentOperator extracts the authenticated operator from the context.
func CurrentOperator(c *gin.Context) (ContextOperator, bool) {
	value, exists := c.Get(string(operatorContextKey))
	if !exists {
		return ContextOperator{}, false
	}
	op, ok := value.(ContextOperator)
	return op, ok
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
