package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	allowedHeaders = "Content-Type, Authorization"
	allowedMethods = "GET, POST, PATCH, DELETE, OPTIONS"
)

// CORS разрешает запросы с любых источников
func CORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	return cors.New(cfg)
}

// AccessControlHeaders добавляет заголовки Access-Control-* к каждому ответу,
// в том числе к ответам на простые запросы без Origin.
func AccessControlHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Next()
	}
}
