package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartcanteen/backend/internal/logging"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler recovers from panics and turns them into a JSON 500. Errors a
// handler attached with c.Error without writing a response become a JSON 500
// as well.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(c.Request.Context()).Error().
					Interface("panic", rec).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			logging.FromContext(c.Request.Context()).Error().Err(c.Errors.Last()).Msg("unhandled request error")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
	}
}
