package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/SiddharthSampath/Trivia-App/internal/handler/response"
	"github.com/SiddharthSampath/Trivia-App/internal/logging"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests — максимальное количество запросов за Window
	MaxRequests int
	// Window — временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix — префикс для ключей в Redis
	KeyPrefix string
}

// DefaultRateLimitConfig возвращает конфигурацию по умолчанию для API
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 120,             // 120 запросов
		Window:      1 * time.Minute, // за 1 минуту
		KeyPrefix:   "rl:api",
	}
}

// RateLimiter ограничивает частоту запросов по IP (fixed window в Redis)
type RateLimiter struct {
	redisClient redis.UniversalClient
	cfg         RateLimitConfig
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(redisClient redis.UniversalClient, cfg RateLimitConfig) *RateLimiter {
	if cfg.MaxRequests <= 0 || cfg.Window <= 0 {
		cfg = DefaultRateLimitConfig()
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultRateLimitConfig().KeyPrefix
	}
	return &RateLimiter{redisClient: redisClient, cfg: cfg}
}

// Limit возвращает Gin middleware.
// При недоступности Redis запрос пропускается (fail-open).
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("%s:%s", rl.cfg.KeyPrefix, clientIP)
		logger := logging.FromContext(c.Request.Context())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Инкрементируем счётчик
		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("rate limiter redis error, allowing request")
			c.Next()
			return
		}

		// Если это первый запрос в окне — устанавливаем TTL
		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, rl.cfg.Window).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("failed to set rate limit TTL")
			}
		}

		remaining := rl.cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		ttl, _ := rl.redisClient.TTL(ctx, key).Result()
		retryAfter := int(ttl.Seconds())
		if retryAfter < 0 {
			retryAfter = int(rl.cfg.Window.Seconds())
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

		if int(count) > rl.cfg.MaxRequests {
			logger.Info().
				Str("ip", clientIP).
				Int64("count", count).
				Int("limit", rl.cfg.MaxRequests).
				Msg("rate limit exceeded")

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			response.Error(c, http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}
