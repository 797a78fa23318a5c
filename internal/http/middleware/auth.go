package middleware

import (
	"net/http"
	"strings"

	"monametro/internal/domain"
	"monametro/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// Authenticate verifies the bearer token and stores identity in the
// context. A missing token is 401; a presented-but-invalid or expired one
// is 403.
func Authenticate(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"code":       "authentication_required",
				"request_id": GetRequestID(c),
			})
			return
		}

		claims, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "invalid or expired token",
				"code":       "token_invalid",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, string(claims.Role))
		c.Next()
	}
}

// GetUserID returns the authenticated caller's id, zero when unauthenticated.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetUserRole returns the authenticated caller's role.
func GetUserRole(c *gin.Context) domain.Role {
	role, _ := domain.ParseRole(c.GetString(userRoleKey))
	return role
}
