// Package server собирает Gin-роутер и HTTP-сервер API викторины.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/SiddharthSampath/Trivia-App/internal/config"
	"github.com/SiddharthSampath/Trivia-App/internal/handler"
	"github.com/SiddharthSampath/Trivia-App/internal/handler/helper"
	"github.com/SiddharthSampath/Trivia-App/internal/handler/response"
	"github.com/SiddharthSampath/Trivia-App/internal/middleware"
	"github.com/SiddharthSampath/Trivia-App/internal/service"
	"github.com/SiddharthSampath/Trivia-App/internal/service/quizmanager"
)

// Deps — зависимости роутера. RateLimiter, Registry и Ping необязательны.
type Deps struct {
	QuestionService *service.QuestionService
	Selector        *quizmanager.Selector
	Logger          zerolog.Logger
	Ping            handler.PingFunc
	RateLimiter     *middleware.RateLimiter
	// Registry: реестр Prometheus; nil отключает метрики и /metrics
	Registry       *prometheus.Registry
	TrustedProxies []string
}

// NewRouter создает Gin-роутер со всеми маршрутами API
func NewRouter(deps Deps) (*gin.Engine, error) {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Пустой список — не доверять прокси-заголовкам (защита от IP spoofing)
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, err
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(),
		middleware.AccessControlHeaders(),
	)
	if deps.Registry != nil {
		router.Use(middleware.NewMetrics(deps.Registry).Handler())
	}
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Limit())
	}

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed)
	})

	questionHandler := handler.NewQuestionHandler(deps.QuestionService)
	categoryHandler := handler.NewCategoryHandler(deps.QuestionService)
	quizHandler := handler.NewQuizHandler(deps.Selector)
	healthHandler := handler.NewHealthHandler(deps.Ping)

	questions := router.Group("/questions")
	{
		questions.GET("", questionHandler.GetQuestions)
		questions.POST("", questionHandler.CreateOrSearchQuestions)
		questions.DELETE("/:id",
			middleware.ExtractUintParam("id", helper.QuestionIDKey),
			questionHandler.DeleteQuestion,
		)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/:id/questions",
			middleware.ExtractUintParam("id", helper.CategoryIDKey),
			questionHandler.GetQuestionsByCategory,
		)
	}

	router.POST("/quizzes", quizHandler.PlayQuiz)

	router.GET("/healthz", healthHandler.Health)
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	return router, nil
}

// NewHTTPServer настраивает HTTP сервер с тайм-аутами для защиты от slow client attacks
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
}
