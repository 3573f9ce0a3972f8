package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPRecorder observes finished requests
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

// Metrics records method, matched route, status and latency of every request.
// Unmatched paths are reported as "unmatched" to keep label cardinality bounded.
func Metrics(recorder HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
