package helper

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SiddharthSampath/Trivia-App/internal/pkg/pagination"
)

// Ключи контекста Gin, под которыми middleware сохраняет параметры пути
const (
	QuestionIDKey = "questionID"
	CategoryIDKey = "categoryID"
)

// PageFromQuery возвращает номер страницы из ?page=, по умолчанию 1
func PageFromQuery(c *gin.Context) int {
	return pagination.ParsePage(c.Query("page"))
}

// UintFromContext возвращает числовой параметр, сохранённый ExtractUintParam.
// ok == false, если параметра нет в контексте.
func UintFromContext(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// CategoryIDFromContext возвращает ID категории в текстовом виде, как он хранится у вопросов
func CategoryIDFromContext(c *gin.Context) (string, bool) {
	id, ok := UintFromContext(c, CategoryIDKey)
	if !ok {
		return "", false
	}
	return strconv.FormatUint(uint64(id), 10), true
}
