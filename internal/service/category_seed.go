package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	"github.com/SiddharthSampath/Trivia-App/internal/domain/repository"
)

// SeedDefaultCategories заполняет пустую таблицу категорий значениями по умолчанию.
// Если категории уже есть (например, их создала SQL-миграция), ничего не делает.
func SeedDefaultCategories(ctx context.Context, repo repository.CategoryRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := entity.DefaultCategories()
	if err := repo.CreateBatch(ctx, defaults); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}
	log.Info().Int("count", len(defaults)).Msg("seeded default categories")
	return nil
}
