package dto

import (
	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	apperrors "github.com/SiddharthSampath/Trivia-App/internal/pkg/errors"
	"github.com/SiddharthSampath/Trivia-App/internal/service"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту
type QuestionResponse struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionListResponse — ответ GET /questions
type QuestionListResponse struct {
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	Categories      []string           `json:"categories"`
	CurrentCategory *string            `json:"current_category"`
}

// QuestionPageResponse — ответ поиска и выборки по категории
type QuestionPageResponse struct {
	Questions       []QuestionResponse `json:"questions"`
	TotalQuestions  int                `json:"total_questions"`
	CurrentCategory *string            `json:"current_category"`
}

// CreateQuestionResponse — ответ на создание вопроса
type CreateQuestionResponse struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}

// DeleteQuestionResponse — ответ на удаление вопроса
type DeleteQuestionResponse struct {
	Success     bool `json:"success"`
	QuestionsID uint `json:"questions_id"`
}

// CategoriesResponse — ответ GET /categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// QuestionRequest — тело POST /questions.
// Непустой searchTerm означает поиск, иначе запрос создаёт вопрос.
type QuestionRequest struct {
	SearchTerm *string     `json:"searchTerm"`
	Question   *string     `json:"question"`
	Answer     *string     `json:"answer"`
	Category   *FlexString `json:"category"`
	Difficulty *FlexInt    `json:"difficulty"`
}

// IsSearch сообщает, что запрос является поиском
func (r *QuestionRequest) IsSearch() bool {
	return r.SearchTerm != nil && *r.SearchTerm != ""
}

// ToInput проверяет наличие всех полей для создания вопроса
func (r *QuestionRequest) ToInput() (service.NewQuestionInput, error) {
	if r.Question == nil || r.Answer == nil || r.Category == nil || r.Difficulty == nil {
		return service.NewQuestionInput{}, apperrors.ErrValidation
	}
	return service.NewQuestionInput{
		Question:   *r.Question,
		Answer:     *r.Answer,
		Category:   r.Category.String(),
		Difficulty: int(*r.Difficulty),
	}, nil
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) *QuestionResponse {
	if q == nil {
		return nil
	}
	return &QuestionResponse{
		ID:         q.ID,
		Question:   q.Text,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// NewQuestionResponses создает DTO для списка вопросов; пустой список сериализуется в []
func NewQuestionResponses(questions []entity.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i := range questions {
		out[i] = *NewQuestionResponse(&questions[i])
	}
	return out
}

// NewQuestionListResponse создает ответ для общего списка вопросов
func NewQuestionListResponse(page *service.QuestionPage) QuestionListResponse {
	return QuestionListResponse{
		Questions:       NewQuestionResponses(page.Questions),
		TotalQuestions:  page.Total,
		Categories:      entity.CategoryTypes(page.Categories),
		CurrentCategory: nil,
	}
}

// NewQuestionPageResponse создает ответ для поиска и выборки по категории
func NewQuestionPageResponse(page *service.QuestionPage) QuestionPageResponse {
	return QuestionPageResponse{
		Questions:       NewQuestionResponses(page.Questions),
		TotalQuestions:  page.Total,
		CurrentCategory: page.CurrentCategory,
	}
}
