package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/SiddharthSampath/Trivia-App/internal/logging"
)

// RequestLogger кладёт в контекст запроса логгер с request_id
// и пишет строку лога по завершении запроса.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		logger := base.With().Str("request_id", c.GetString(RequestIDKey)).Logger()
		c.Request = c.Request.WithContext(logging.IntoContext(c.Request.Context(), logger))

		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
