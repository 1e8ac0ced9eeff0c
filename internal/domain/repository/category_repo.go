package repository

import (
	"context"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, categories []entity.Category) error
}
