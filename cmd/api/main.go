package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/SiddharthSampath/Trivia-App/internal/config"
	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	"github.com/SiddharthSampath/Trivia-App/internal/logging"
	"github.com/SiddharthSampath/Trivia-App/internal/middleware"
	pgRepo "github.com/SiddharthSampath/Trivia-App/internal/repository/postgres"
	"github.com/SiddharthSampath/Trivia-App/internal/server"
	"github.com/SiddharthSampath/Trivia-App/internal/service"
	"github.com/SiddharthSampath/Trivia-App/internal/service/quizmanager"
	"github.com/SiddharthSampath/Trivia-App/pkg/database"
)

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env")
	}

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	logging.SetGlobal(logger)

	if gin.Mode() == gin.DebugMode && cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Создаем контекст с отменой для корректного завершения работы
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем подключение к базе
	db, err := database.NewDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to connect to database")
	}
	sqlDB, err := database.GetSQLDB(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get sql.DB")
	}
	defer sqlDB.Close()

	// Применяем миграции
	if err := database.MigrateDB(ctx, db, cfg.Database, &entity.Category{}, &entity.Question{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Redis нужен только для rate limiting
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer func(c redis.UniversalClient) {
			if err := c.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing redis client")
			}
		}(redisClient)

		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			MaxRequests: cfg.RateLimit.MaxRequests,
			Window:      cfg.RateLimit.Window(),
		})
		logger.Info().Int("max_requests", cfg.RateLimit.MaxRequests).Int("window_sec", cfg.RateLimit.WindowSec).Msg("rate limiting enabled")
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(sqlDB, cfg.Database.Driver),
		)
	}

	// Инициализируем репозитории
	questionRepo := pgRepo.NewQuestionRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)

	if err := service.SeedDefaultCategories(ctx, categoryRepo); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed categories")
	}

	// Инициализируем сервисы
	questionService := service.NewQuestionService(questionRepo, categoryRepo, cfg.Trivia.QuestionsPerPage)
	selector := quizmanager.NewSelector(questionRepo, nil)

	router, err := server.NewRouter(server.Deps{
		QuestionService: questionService,
		Selector:        selector,
		Logger:          logger,
		Ping:            database.Ping(db),
		RateLimiter:     rateLimiter,
		Registry:        registry,
		TrustedProxies:  cfg.Server.TrustedProxies,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	srv := server.NewHTTPServer(cfg.Server, router)

	// Запускаем сервер в горутине
	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down server")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server failed")
	}

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited properly")
}
