package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader — заголовок с идентификатором запроса
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey — ключ идентификатора запроса в контексте Gin
	RequestIDKey = "requestID"
)

// RequestID присваивает запросу идентификатор.
// Идентификатор из входящего заголовка сохраняется, если он не длиннее 64 символов.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
