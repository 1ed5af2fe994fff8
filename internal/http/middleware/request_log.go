package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/quizmind-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizmind-backend/internal/platform/logger"
)

// RequestLogger writes one access line per request once the handler chain is
// done, so the caller attached by RequireAuth is included.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	accessLog := log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
		}
		fields = append(fields, ctxutil.GetRequestData(c.Request.Context()).LogFields()...)
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "errors", errs.String())
		}

		switch {
		case status >= 500:
			accessLog.Error("request", fields...)
		case status >= 400:
			accessLog.Warn("request", fields...)
		default:
			accessLog.Debug("request", fields...)
		}
	}
}
