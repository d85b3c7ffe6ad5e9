package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-leave-gateway/internal/service"
)

// unmatchedRoute labels requests no gateway route handled, keeping arbitrary
// paths out of the metric labels.
const unmatchedRoute = "unmatched"

// Metrics records latency and status per gateway route. Scrapes of scrapePath
// are not counted.
func Metrics(metrics *service.MetricsService, scrapePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || (scrapePath != "" && c.Request.URL.Path == scrapePath) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
