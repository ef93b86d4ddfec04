package middleware

import (
	"strconv"
	"time"

	bcpmetrics "atlasbcp/backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics is a Gin middleware collecting Prometheus metrics for HTTP requests.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		method := c.Request.Method

		// Use c.FullPath() for the route template, which keeps label cardinality low.
		// If FullPath() is empty (e.g. route not found), fall back to the raw path.
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		latency := time.Since(start)

		if bcpmetrics.HTTPRequestCounter != nil {
			bcpmetrics.HTTPRequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		}
		if bcpmetrics.HTTPRequestDuration != nil {
			bcpmetrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(latency.Seconds())
		}
	}
}
