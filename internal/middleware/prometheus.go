package middleware

import (
	"strconv"
	"time"

	"forum/internal/observability"

	"github.com/gin-gonic/gin"
)

const unmatchedRoute = "unmatched"

// PrometheusMiddleware records every request against its route pattern.
// Requests to skipPaths, such as metric scrapes and health checks, go through
// unrecorded.
func PrometheusMiddleware(metrics *observability.Metrics, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if _, ok := skip[route]; ok {
			c.Next()
			return
		}
		if route == "" {
			route = unmatchedRoute
		}

		metrics.HTTPRequestsInFlight.Inc()
		start := time.Now()
		defer func() {
			metrics.HTTPRequestsInFlight.Dec()
			metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		}()

		c.Next()
	}
}
