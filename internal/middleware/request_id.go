package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/frontend/internal/client"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-Id"

// RequestID reuses a valid incoming request id or generates one, echoes it
// back and forwards it to catalog API calls made while serving the request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(client.WithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
