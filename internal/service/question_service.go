package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	"github.com/SiddharthSampath/Trivia-App/internal/domain/repository"
	apperrors "github.com/SiddharthSampath/Trivia-App/internal/pkg/errors"
	"github.com/SiddharthSampath/Trivia-App/internal/pkg/pagination"
)

// QuestionPage — страница вопросов вместе с общим количеством
type QuestionPage struct {
	Questions       []entity.Question
	Total           int
	Categories      []entity.Category
	CurrentCategory *string
}

// NewQuestionInput содержит поля для создания вопроса
type NewQuestionInput struct {
	Question   string
	Answer     string
	Category   string
	Difficulty int
}

// QuestionService предоставляет методы для работы с вопросами и категориями
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	pageSize     int
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	pageSize int,
) *QuestionService {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		pageSize:     pageSize,
	}
}

// ListQuestions возвращает страницу всех вопросов и список категорий.
// Пустая страница — ErrEmptyResult.
func (s *QuestionService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	current := pagination.Paginate(questions, page, s.pageSize)
	if len(current) == 0 {
		return nil, apperrors.ErrEmptyResult
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &QuestionPage{
		Questions:  current,
		Total:      len(questions),
		Categories: categories,
	}, nil
}

// ListByCategory возвращает страницу вопросов категории.
// current_category берётся из первого вопроса страницы.
func (s *QuestionService) ListByCategory(ctx context.Context, categoryID string, page int) (*QuestionPage, error) {
	questions, err := s.questionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions of category %s: %w", categoryID, err)
	}

	current := pagination.Paginate(questions, page, s.pageSize)
	if len(current) == 0 {
		return nil, apperrors.ErrEmptyResult
	}

	currentCategory := current[0].Category
	return &QuestionPage{
		Questions:       current,
		Total:           len(questions),
		CurrentCategory: &currentCategory,
	}, nil
}

// SearchQuestions ищет вопросы по подстроке.
// Отсутствие совпадений не является ошибкой.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string, page int) (*QuestionPage, error) {
	questions, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}

	current := pagination.Paginate(questions, page, s.pageSize)
	result := &QuestionPage{
		Questions: current,
		Total:     len(questions),
	}
	if len(current) > 0 {
		// current_category — категория последнего вопроса на странице
		currentCategory := current[len(current)-1].Category
		result.CurrentCategory = &currentCategory
	}
	return result, nil
}

// CreateQuestion проверяет поля и сохраняет новый вопрос
func (s *QuestionService) CreateQuestion(ctx context.Context, input NewQuestionInput) (*entity.Question, error) {
	question := &entity.Question{
		Text:       strings.TrimSpace(input.Question),
		Answer:     strings.TrimSpace(input.Answer),
		Category:   strings.TrimSpace(input.Category),
		Difficulty: input.Difficulty,
	}

	switch {
	case question.Text == "":
		return nil, fmt.Errorf("%w: question is required", apperrors.ErrValidation)
	case question.Answer == "":
		return nil, fmt.Errorf("%w: answer is required", apperrors.ErrValidation)
	case question.Category == "":
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	case question.Difficulty < 1:
		return nil, fmt.Errorf("%w: difficulty must be a positive integer", apperrors.ErrValidation)
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// DeleteQuestion удаляет вопрос; ErrNotFound, если его нет
func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	return s.questionRepo.Delete(ctx, id)
}

// ListCategories возвращает все категории
func (s *QuestionService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
