package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	apperrors "github.com/SiddharthSampath/Trivia-App/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// List возвращает все вопросы
func (r *QuestionRepo) List(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ListByCategory возвращает вопросы категории
func (r *QuestionRepo) ListByCategory(ctx context.Context, categoryID string) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Where("category = ?", strings.TrimSpace(categoryID)).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Search ищет вопросы, текст которых содержит term (без учёта регистра)
func (r *QuestionRepo) Search(ctx context.Context, term string) ([]entity.Question, error) {
	var questions []entity.Question
	pattern := "%" + escapeLike(term) + "%"

	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Where(`question ILIKE ? ESCAPE '\'`, pattern)
	} else {
		// В sqlite нет ILIKE
		query = query.Where(`LOWER(question) LIKE LOWER(?) ESCAPE '\'`, pattern)
	}

	if err := query.Order("id").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// Create создает новый вопрос; ID присваивает база
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	question.ID = 0
	return r.db.WithContext(ctx).Create(question).Error
}

// CreateBatch создает пакет вопросов
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			// Устанавливаем кодировку UTF-8 внутри транзакции
			if err := tx.Exec("SET CLIENT_ENCODING TO 'UTF8'").Error; err != nil {
				return err
			}
		}
		return tx.CreateInBatches(&questions, 100).Error
	})
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE, чтобы term искался как литерал
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
