package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/jan-translator/internal/infrastructure/auth"
	"github.com/janhq/jan-translator/internal/utils/redact"
)

// LoggingMiddleware writes one access line per sandbox call on the request
// logger. Calls made with a valid token name the account, with the username
// scrubbed to the configured content level.
func LoggingMiddleware(redactor *redact.Redactor) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		reqLog := zerolog.Ctx(c.Request.Context())
		status := c.Writer.Status()
		event := reqLog.Info()
		switch {
		case status >= 500:
			event = reqLog.Error()
		case status >= 400:
			event = reqLog.Warn()
		}

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
			event = event.Str("trace_id", sc.TraceID().String())
		}
		if user, ok := auth.CurrentUser(c); ok {
			event = event.Int64("user_id", user.ID).Str("user", redactor.Text(user.Username))
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		event.
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("resp_bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("log_content", string(redactor.Level())).
			Msg(accessMessage(c))
	}
}

func accessMessage(c *gin.Context) string {
	if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
		return errs.String()
	}
	return "sandbox request"
}
