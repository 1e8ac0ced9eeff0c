package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	"github.com/SiddharthSampath/Trivia-App/internal/handler/dto"
	"github.com/SiddharthSampath/Trivia-App/internal/handler/response"
	"github.com/SiddharthSampath/Trivia-App/internal/service"
)

// CategoryHandler обрабатывает запросы, связанные с категориями
type CategoryHandler struct {
	questionService *service.QuestionService
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(questionService *service.QuestionService) *CategoryHandler {
	return &CategoryHandler{
		questionService: questionService,
	}
}

// GetCategories возвращает подписи всех категорий
// GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.questionService.ListCategories(c.Request.Context())
	if err != nil {
		response.FromError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.CategoriesResponse{
		Categories: entity.CategoryTypes(categories),
	})
}
