package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escrowdesk/backend/internal/interfaces/http/dto"
)

// DefaultMaxBodySize caps request bodies at 1 MiB. Verification requests
// reference uploaded screenshots by object key, so no endpoint receives
// large payloads directly.
const DefaultMaxBodySize int64 = 1 << 20

// BodyLimit rejects requests whose body exceeds maxBytes
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "request body too large", GetRequestID(c)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
