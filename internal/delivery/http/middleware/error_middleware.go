package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ravularamesh74/Job-Portal/internal/delivery/http/response"
	"github.com/Ravularamesh74/Job-Portal/pkg/apperror"
	"github.com/Ravularamesh74/Job-Portal/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Recoverable {
					response.RetryableError(c, appErr.Code, appErr.Message)
					return
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
				return
			}

			// Never expose internal error details to clients; log
			// server-side and send a generic message.
			logger.Log.Error("unhandled request error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
