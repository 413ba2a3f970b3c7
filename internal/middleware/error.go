package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from panics in page handlers, logs them with the
// request id and answers with a plain error page
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				panicRecoveries.Inc()
				log.Printf("[ErrorHandler] panic serving %s %s (request %s): %v",
					c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), err)
				c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8",
					[]byte("Something went wrong. Please try again."))
				c.Abort()
			}
		}()

		c.Next()
	}
}
