package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SiddharthSampath/Trivia-App/internal/handler/response"
)

// ExtractUintParam создает middleware для извлечения и валидации числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
// Нечисловой параметр означает несуществующий маршрут, поэтому ответ — 404.
// Слишком большое число остаётся числом: оно ограничивается сверху math.MaxInt64,
// и обработчик сам решает, что такой записи нет.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		// bitSize 63: значение всегда помещается в BIGINT и int64 драйверов
		id, err := strconv.ParseUint(idStr, 10, 63)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			response.Error(c, http.StatusNotFound)
			return
		}
		// Сохраняем как uint для единообразия
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
