// Package response — единая точка преобразования ошибок в JSON-ответы API.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SiddharthSampath/Trivia-App/internal/logging"
	apperrors "github.com/SiddharthSampath/Trivia-App/internal/pkg/errors"
)

// ErrorResponse — конверт для всех ошибок API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var messages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Resource Not Found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusUnprocessableEntity: "Unprocessable",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
}

// Message возвращает фиксированный текст для кода ответа
func Message(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// Error прерывает обработку запроса и отдаёт конверт ошибки
func Error(c *gin.Context, status int) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: Message(status),
	})
}

// StatusFor возвращает HTTP-код для ошибки; неизвестные ошибки получают fallback.
// ErrNotFound отвечает 422: так удаление несуществующего вопроса описано в контракте API.
func StatusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrEmptyResult):
		return http.StatusNotFound
	default:
		return fallback
	}
}

// FromError отвечает конвертом ошибки для err; неожиданные ошибки логируются
func FromError(c *gin.Context, err error, fallback int) {
	status := StatusFor(err, fallback)
	if !isDomainError(err) {
		logger := logging.FromContext(c.Request.Context())
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("request failed")
	}
	Error(c, status)
}

func isDomainError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrEmptyResult)
}
