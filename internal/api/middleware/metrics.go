package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/icpcsp/compreg/internal/metrics"
)

// Metrics records request latency labelled by route template, so path ids do not
// explode the label space.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.APIRequestDuration.
			WithLabelValues(path, ctx.Request.Method, strconv.Itoa(ctx.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
