package middleware

import (
	"errors"
	"net/http"

	"internmatch-backend/internal/delivery/http/response"
	"internmatch-backend/pkg/apperror"
	"internmatch-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				// Unauthorized is a recoverable prompt-sign-in condition,
				// not a fault; store failures are logged with their cause
				// but leave only the generic message for the client.
				if appErr.Err != nil {
					logger.Log.Error("request failed", "code", appErr.Code, "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unexpected error", "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
