package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groupwarden/groupwarden/internal/logger"
	"github.com/groupwarden/groupwarden/internal/types"
)

// LoggingMiddleware logs every HTTP request with the standard logger.
func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		ctx := c.Request.Context()

		fields := []interface{}{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"query", raw,
			"latency_ms", latency.Milliseconds(),
		}
		if requestID := types.GetRequestID(ctx); requestID != "" {
			fields = append(fields, "request_id", requestID)
		}
		if tenantID := types.GetTenantID(ctx); tenantID != "" {
			fields = append(fields, "tenant_id", tenantID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Errorw("HTTP_REQUEST_ERROR", fields...)
		case status >= 400:
			log.Warnw("HTTP_REQUEST_WARNING", fields...)
		default:
			log.Infow("HTTP_REQUEST_INFO", fields...)
		}
	}
}
