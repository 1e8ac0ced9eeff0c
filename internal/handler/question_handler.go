package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SiddharthSampath/Trivia-App/internal/handler/dto"
	"github.com/SiddharthSampath/Trivia-App/internal/handler/helper"
	"github.com/SiddharthSampath/Trivia-App/internal/handler/response"
	"github.com/SiddharthSampath/Trivia-App/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// GetQuestions возвращает страницу вопросов со списком категорий
// GET /questions?page=N
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page, err := h.questionService.ListQuestions(c.Request.Context(), helper.PageFromQuery(c))
	if err != nil {
		response.FromError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(page))
}

// DeleteQuestion удаляет вопрос
// DELETE /questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := helper.UintFromContext(c, helper.QuestionIDKey)
	if !ok {
		response.Error(c, http.StatusNotFound)
		return
	}

	if err := h.questionService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		response.FromError(c, err, http.StatusUnprocessableEntity)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteQuestionResponse{
		Success:     true,
		QuestionsID: questionID,
	})
}

// CreateOrSearchQuestions обслуживает и создание вопроса, и поиск:
// тело с непустым searchTerm — поиск, иначе — создание.
// POST /questions
func (h *QuestionHandler) CreateOrSearchQuestions(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest)
		return
	}

	if req.IsSearch() {
		h.searchQuestions(c, *req.SearchTerm)
		return
	}
	h.createQuestion(c, &req)
}

func (h *QuestionHandler) searchQuestions(c *gin.Context, term string) {
	page, err := h.questionService.SearchQuestions(c.Request.Context(), term, helper.PageFromQuery(c))
	if err != nil {
		response.FromError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionPageResponse(page))
}

func (h *QuestionHandler) createQuestion(c *gin.Context, req *dto.QuestionRequest) {
	input, err := req.ToInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest)
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, dto.CreateQuestionResponse{
		Success: true,
		ID:      question.ID,
	})
}

// GetQuestionsByCategory возвращает страницу вопросов категории
// GET /categories/:id/questions?page=N
func (h *QuestionHandler) GetQuestionsByCategory(c *gin.Context) {
	categoryID, ok := helper.CategoryIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusNotFound)
		return
	}

	page, err := h.questionService.ListByCategory(c.Request.Context(), categoryID, helper.PageFromQuery(c))
	if err != nil {
		response.FromError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionPageResponse(page))
}
