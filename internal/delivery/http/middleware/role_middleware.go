package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
)

// RequireRole guards a route group behind one of the allowed roles. Must run
// after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
		c.Abort()
	}
}
