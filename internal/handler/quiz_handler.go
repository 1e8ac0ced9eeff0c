package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SiddharthSampath/Trivia-App/internal/handler/dto"
	"github.com/SiddharthSampath/Trivia-App/internal/handler/response"
	"github.com/SiddharthSampath/Trivia-App/internal/service/quizmanager"
)

// QuizHandler обрабатывает запросы игры в викторину
type QuizHandler struct {
	selector *quizmanager.Selector
}

// NewQuizHandler создает новый обработчик викторины
func NewQuizHandler(selector *quizmanager.Selector) *QuizHandler {
	return &QuizHandler{
		selector: selector,
	}
}

// PlayQuiz возвращает следующий случайный вопрос, которого нет в previous_questions.
// question == null означает, что вопросы закончились.
// POST /quizzes
func (h *QuizHandler) PlayQuiz(c *gin.Context) {
	var req dto.PlayQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest)
		return
	}

	question, err := h.selector.NextQuestion(c.Request.Context(), req.Selector(), req.Previous())
	if err != nil {
		response.FromError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(question))
}
