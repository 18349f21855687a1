package middleware

import (
	"time"

	"investigacion/internal/infra"

	"github.com/gin-gonic/gin"
)

// Metrics records count and latency per route template.
func Metrics(m *infra.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
