package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/textcodec/internal/httputil"
)

// BodyLimitMiddleware caps the request body at maxBytes. Reads past the cap
// fail with *http.MaxBytesError, which the handlers answer with 413.
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httputil.ErrorResponse{
				Error:   "request_too_large",
				Message: httputil.RequestTooLargeMessage,
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
