package dto

import (
	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	"github.com/SiddharthSampath/Trivia-App/internal/service/quizmanager"
)

// QuizCategoryRequest — категория викторины, как её присылает фронтенд
type QuizCategoryRequest struct {
	ID   *FlexString `json:"id" binding:"required"`
	Type *string     `json:"type" binding:"required"`
}

// PlayQuizRequest — тело POST /quizzes
type PlayQuizRequest struct {
	QuizCategory      *QuizCategoryRequest `json:"quiz_category" binding:"required"`
	PreviousQuestions *[]uint              `json:"previous_questions" binding:"required"`
}

// Selector переводит категорию запроса в селектор пула
func (r *PlayQuizRequest) Selector() quizmanager.CategorySelector {
	return quizmanager.ParseCategorySelector(r.QuizCategory.ID.String(), *r.QuizCategory.Type)
}

// Previous возвращает ID уже заданных вопросов
func (r *PlayQuizRequest) Previous() []uint {
	return *r.PreviousQuestions
}

// QuizResponse — ответ POST /quizzes; question == null означает конец викторины
type QuizResponse struct {
	Question *QuestionResponse `json:"question"`
}

// NewQuizResponse создает ответ викторины
func NewQuizResponse(q *entity.Question) QuizResponse {
	return QuizResponse{Question: NewQuestionResponse(q)}
}
