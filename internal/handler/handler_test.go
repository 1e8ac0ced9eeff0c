package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с сырым JSON body
func newTestGinContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Request validation tests — сервисы не нужны:
// handler возвращает 400 до вызова сервиса
// ============================================================================

func TestCreateOrSearchQuestions_ValidationErrors(t *testing.T) {
	h := &QuestionHandler{} // nil service — OK для validation tests

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", `{"question":`},
		{"missing question", `{"answer":"a","category":1,"difficulty":1}`},
		{"missing answer", `{"question":"q","category":1,"difficulty":1}`},
		{"missing category", `{"question":"q","answer":"a","difficulty":1}`},
		{"missing difficulty", `{"question":"q","answer":"a","category":1}`},
		{"empty searchTerm without fields", `{"searchTerm":""}`},
		{"difficulty not a number", `{"question":"q","answer":"a","category":1,"difficulty":"hard"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/questions", tt.body)

			h.CreateOrSearchQuestions(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, float64(400), resp["error"])
			assert.Equal(t, "Bad Request", resp["message"])
		})
	}
}

func TestPlayQuiz_ValidationErrors(t *testing.T) {
	h := &QuizHandler{} // nil selector — OK для validation tests

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing quiz_category", `{"previous_questions":[]}`},
		{"missing previous_questions", `{"quiz_category":{"id":1,"type":"Science"}}`},
		{"null previous_questions", `{"quiz_category":{"id":1,"type":"Science"},"previous_questions":null}`},
		{"missing category id", `{"quiz_category":{"type":"Science"},"previous_questions":[]}`},
		{"missing category type", `{"quiz_category":{"id":1},"previous_questions":[]}`},
		{"negative previous id", `{"quiz_category":{"id":1,"type":"Science"},"previous_questions":[-1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/quizzes", tt.body)

			h.PlayQuiz(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, "Bad Request", resp["message"])
		})
	}
}

func TestQuestionHandler_MissingIDInContext(t *testing.T) {
	h := &QuestionHandler{} // nil service: без id в контексте до сервиса не доходит

	tests := []struct {
		name   string
		method string
		path   string
		call   func(c *gin.Context)
	}{
		{"delete question", http.MethodDelete, "/questions/1", h.DeleteQuestion},
		{"questions by category", http.MethodGet, "/categories/1/questions", h.GetQuestionsByCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(tt.method, tt.path, "")

			tt.call(c)

			assert.Equal(t, http.StatusNotFound, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, "Resource Not Found", resp["message"])
		})
	}
}

func TestHealth(t *testing.T) {
	t.Run("без ping", func(t *testing.T) {
		c, w := newTestGinContext(http.MethodGet, "/healthz", "")

		NewHealthHandler(nil).Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", parseJSONResponse(t, w)["status"])
	})

	t.Run("база недоступна", func(t *testing.T) {
		c, w := newTestGinContext(http.MethodGet, "/healthz", "")
		ping := func(ctx context.Context) error { return errors.New("connection refused") }

		NewHealthHandler(ping).Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unavailable", parseJSONResponse(t, w)["status"])
	})
}
