// Команда seed загружает вопросы из CSV/XLSX в базу (-file)
// или выгружает все вопросы в файл (-export).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/SiddharthSampath/Trivia-App/internal/config"
	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	"github.com/SiddharthSampath/Trivia-App/internal/logging"
	pgRepo "github.com/SiddharthSampath/Trivia-App/internal/repository/postgres"
	"github.com/SiddharthSampath/Trivia-App/internal/seed"
	"github.com/SiddharthSampath/Trivia-App/internal/service"
	"github.com/SiddharthSampath/Trivia-App/pkg/database"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	importPath := flag.String("file", "", "файл .csv или .xlsx с вопросами для загрузки")
	exportPath := flag.String("export", "", "файл .csv или .xlsx для выгрузки вопросов")
	flag.Parse()

	if (*importPath == "") == (*exportPath == "") {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.SetGlobal(logging.New(cfg.Log.Level, "console"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.MigrateDB(ctx, db, cfg.Database, &entity.Category{}, &entity.Question{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := service.SeedDefaultCategories(ctx, pgRepo.NewCategoryRepo(db)); err != nil {
		log.Fatal().Err(err).Msg("failed to seed categories")
	}

	questionRepo := pgRepo.NewQuestionRepo(db)

	if *exportPath != "" {
		questions, err := questionRepo.List(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to list questions")
		}
		if err := seed.WriteQuestions(*exportPath, questions); err != nil {
			log.Fatal().Err(err).Msg("failed to export questions")
		}
		log.Info().Int("count", len(questions)).Str("file", *exportPath).Msg("questions exported")
		return
	}

	questions, err := seed.ReadQuestions(*importPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *importPath).Msg("failed to read questions")
	}
	if len(questions) == 0 {
		log.Warn().Str("file", *importPath).Msg("no questions found")
		return
	}
	if err := questionRepo.CreateBatch(ctx, questions); err != nil {
		log.Fatal().Err(err).Msg("failed to import questions")
	}
	log.Info().Int("count", len(questions)).Str("file", *importPath).Msg("questions imported")
}
