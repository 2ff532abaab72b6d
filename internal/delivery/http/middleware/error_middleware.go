package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/pkg/apperror"
	"meup-backend/pkg/logger"
)

// ErrorHandler renders errors attached to the gin context after the handler
// chain ran. AppErrors map to their status code; anything else is logged and
// hidden behind a generic message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unhandled request error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
