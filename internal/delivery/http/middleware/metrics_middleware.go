package middleware

import (
	"time"

	"job-portal-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records one observation per request, labelled by route template
// so path parameters do not explode label cardinality.
func Metrics(recorder metrics.HTTPRecorder) gin.HandlerFunc {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
