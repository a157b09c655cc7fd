package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/fundocs-backend/internal/platform/ctxutil"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// quietRoutes are polled by infrastructure; successful hits log at debug.
var quietRoutes = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// RequestLogger emits one "request completed" line per request. Matched
// requests are keyed by their route template; unmatched ones keep the raw
// path so scans of unknown URLs stay visible.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		fields := make([]interface{}, 0, 16)
		if route == "" {
			fields = append(fields, "route", routeUnmatched, "raw_path", c.Request.URL.Path)
		} else {
			fields = append(fields, "route", route)
		}
		fields = append(fields,
			"method", c.Request.Method,
			"status", status,
			"latency", time.Since(start).Round(time.Microsecond).String(),
			"resp_bytes", c.Writer.Size(),
		)
		if uid := requestUserID(c); uid != "" {
			fields = append(fields, "user_id", uid)
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil && td.RequestID != "" {
			fields = append(fields, "request_id", td.RequestID)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "handler_errors", errs.Errors())
		}

		const msg = "request completed"
		switch {
		case status >= 500:
			log.Error(msg, fields...)
		case status >= 400:
			log.Warn(msg, fields...)
		case quietRoutes[route]:
			log.Debug(msg, fields...)
		default:
			log.Info(msg, fields...)
		}
	}
}

// requestUserID reads the caller's user id from the query string. JSON
// bodies are left unread.
func requestUserID(c *gin.Context) string {
	if v := c.Query("user_id"); v != "" {
		return v
	}
	return c.Query("userId")
}
