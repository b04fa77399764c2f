package middleware

import (
	"fmt"

	"mini-payrun/internal/shared/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics counts every request and records a line for each failed response.
// The collector is injected so nothing here is process-global.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		collector.CountRequest()
		c.Next()

		if status := c.Writer.Status(); status >= 400 {
			collector.RecordError(fmt.Sprintf("%s %s -> %d", c.Request.Method, c.FullPath(), status))
		}
	}
}
