package repository

import (
	"context"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами.
// Все списки упорядочены по ID.
type QuestionRepository interface {
	List(ctx context.Context) ([]entity.Question, error)
	ListByCategory(ctx context.Context, categoryID string) ([]entity.Question, error)
	// Search ищет подстроку в тексте вопроса без учёта регистра
	Search(ctx context.Context, term string) ([]entity.Question, error)
	Create(ctx context.Context, question *entity.Question) error
	CreateBatch(ctx context.Context, questions []entity.Question) error
	// Delete возвращает errors.ErrNotFound, если вопроса с таким ID нет
	Delete(ctx context.Context, id uint) error
}
