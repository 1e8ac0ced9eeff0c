package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SiddharthSampath/Trivia-App/internal/logging"
)

// PingFunc проверяет доступность хранилища
type PingFunc func(ctx context.Context) error

// HealthHandler отдаёт состояние сервиса
type HealthHandler struct {
	ping PingFunc
}

// NewHealthHandler создает обработчик проверки здоровья; ping может быть nil
func NewHealthHandler(ping PingFunc) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Health проверяет подключение к базе
// GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			logger := logging.FromContext(c.Request.Context())
			logger.Warn().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
