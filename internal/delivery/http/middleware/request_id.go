package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every request so log lines and response envelopes can be
// correlated. An incoming X-Request-ID is honored, otherwise one is minted.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("RequestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
