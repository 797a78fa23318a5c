package middleware

import (
	"net/http"

	"monametro/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireEndpoint gates a route through the authorization table. Assumes
// Authenticate ran earlier on the chain and set the caller's role.
func RequireEndpoint(endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"code":       "authentication_required",
				"request_id": GetRequestID(c),
			})
			return
		}

		if !domain.Authorize(role, endpoint) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "role not permitted for this action",
				"code":       "forbidden",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}
