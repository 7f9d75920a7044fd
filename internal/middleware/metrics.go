package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kadcom/pphc/internal/observability/metrics"
)

// Metrics counts requests by method, matched route pattern and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.IncHTTPRequest(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()))
	}
}

// BodyLimit caps request bodies at n bytes. Zero or less disables it.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
