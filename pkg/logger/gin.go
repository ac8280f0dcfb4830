package logger

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Gin logs one record per request at StatusLevel of the response.
func Gin(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		log.LogAttrs(c.Request.Context(), StatusLevel(status), "http request", attrs...)
	}
}
