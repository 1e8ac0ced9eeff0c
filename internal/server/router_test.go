package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SiddharthSampath/Trivia-App/internal/config"
	"github.com/SiddharthSampath/Trivia-App/internal/domain/entity"
	pgRepo "github.com/SiddharthSampath/Trivia-App/internal/repository/postgres"
	"github.com/SiddharthSampath/Trivia-App/internal/service"
	"github.com/SiddharthSampath/Trivia-App/internal/service/quizmanager"
	"github.com/SiddharthSampath/Trivia-App/pkg/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router http.Handler
	db     *gorm.DB
}

// newTestAPI поднимает роутер поверх in-memory sqlite с категориями по умолчанию
func newTestAPI(t *testing.T, questions int) *testAPI {
	t.Helper()

	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}
	db, err := database.NewSQLiteDB(cfg.Path, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	ctx := context.Background()
	require.NoError(t, database.MigrateDB(ctx, db, cfg, &entity.Category{}, &entity.Question{}))

	for i := 1; i <= questions; i++ {
		q := entity.Question{
			Text:       fmt.Sprintf("Question number %d?", i),
			Answer:     fmt.Sprintf("Answer %d", i),
			Category:   fmt.Sprintf("%d", (i-1)%2+1),
			Difficulty: i%5 + 1,
		}
		require.NoError(t, db.Create(&q).Error)
	}

	questionRepo := pgRepo.NewQuestionRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	require.NoError(t, service.SeedDefaultCategories(ctx, categoryRepo))

	router, err := NewRouter(Deps{
		QuestionService: service.NewQuestionService(questionRepo, categoryRepo, 10),
		Selector:        quizmanager.NewSelector(questionRepo, nil),
		Logger:          zerolog.Nop(),
		Ping:            database.Ping(db),
		Registry:        prometheus.NewRegistry(),
	})
	require.NoError(t, err)

	return &testAPI{router: router, db: db}
}

func (a *testAPI) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return w, resp
}

func assertErrorEnvelope(t *testing.T, resp map[string]interface{}, status int, message string) {
	t.Helper()
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, float64(status), resp["error"])
	assert.Equal(t, message, resp["message"])
}

func TestGetQuestions_Pagination(t *testing.T) {
	api := newTestAPI(t, 15)

	w, resp := api.do(t, http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["questions"], 10)
	assert.Equal(t, float64(15), resp["total_questions"])
	assert.Equal(t, []interface{}{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}, resp["categories"])
	assert.Nil(t, resp["current_category"])

	w, resp = api.do(t, http.MethodGet, "/questions?page=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["questions"], 5)

	// Нечисловая страница трактуется как первая
	w, resp = api.do(t, http.MethodGet, "/questions?page=abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["questions"], 10)
}

func TestGetQuestions_PageBeyondEnd(t *testing.T) {
	api := newTestAPI(t, 3)

	w, resp := api.do(t, http.MethodGet, "/questions?page=1000", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
}

func TestGetQuestions_HugePage(t *testing.T) {
	api := newTestAPI(t, 3)

	for _, path := range []string{
		"/questions?page=1000000000000000000",
		"/questions?page=9223372036854775807",
		"/categories/1/questions?page=1000000000000000000",
		"/categories/1/questions?page=9223372036854775807",
	} {
		t.Run(path, func(t *testing.T) {
			w, resp := api.do(t, http.MethodGet, path, "")

			assert.Equal(t, http.StatusNotFound, w.Code)
			assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
		})
	}

	// Поиск на огромной странице отдаёт пустой список и общее число совпадений
	w, resp := api.do(t, http.MethodPost, "/questions?page=9223372036854775807", `{"searchTerm":"question"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, resp["questions"])
	assert.Equal(t, float64(3), resp["total_questions"])
}

func TestGetQuestions_EmptyStore(t *testing.T) {
	api := newTestAPI(t, 0)

	w, resp := api.do(t, http.MethodGet, "/questions", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
}

func TestGetCategories(t *testing.T) {
	api := newTestAPI(t, 0)

	w, resp := api.do(t, http.MethodGet, "/categories", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}, resp["categories"])
}

func TestDeleteQuestion(t *testing.T) {
	api := newTestAPI(t, 3)

	w, resp := api.do(t, http.MethodDelete, "/questions/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(2), resp["questions_id"])

	var count int64
	require.NoError(t, api.db.Model(&entity.Question{}).Where("id = ?", 2).Count(&count).Error)
	assert.Zero(t, count)

	// Повторное удаление того же вопроса
	w, resp = api.do(t, http.MethodDelete, "/questions/2", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assertErrorEnvelope(t, resp, http.StatusUnprocessableEntity, "Unprocessable")
}

func TestDeleteQuestion_NotFound(t *testing.T) {
	api := newTestAPI(t, 1)

	for _, path := range []string{
		"/questions/1000",
		"/questions/99999999999",
		"/questions/99999999999999999999999",
	} {
		t.Run(path, func(t *testing.T) {
			w, resp := api.do(t, http.MethodDelete, path, "")

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assertErrorEnvelope(t, resp, http.StatusUnprocessableEntity, "Unprocessable")
		})
	}
}

func TestDeleteQuestion_InvalidID(t *testing.T) {
	api := newTestAPI(t, 1)

	w, resp := api.do(t, http.MethodDelete, "/questions/abc", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
}

func TestCreateQuestion_ThenListed(t *testing.T) {
	api := newTestAPI(t, 2)

	w, resp := api.do(t, http.MethodPost, "/questions",
		`{"question":"Who painted the Mona Lisa?","answer":"Leonardo","difficulty":2,"category":"2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	id := resp["id"]
	assert.Equal(t, float64(3), id)

	w, resp = api.do(t, http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), resp["total_questions"])

	questions := resp["questions"].([]interface{})
	last := questions[len(questions)-1].(map[string]interface{})
	assert.Equal(t, id, last["id"])
	assert.Equal(t, "Who painted the Mona Lisa?", last["question"])
	assert.Equal(t, "2", last["category"])
	assert.Equal(t, float64(2), last["difficulty"])
}

func TestCreateQuestion_MissingFields(t *testing.T) {
	api := newTestAPI(t, 0)

	bodies := map[string]string{
		"без question":   `{"answer":"a","difficulty":1,"category":1}`,
		"без answer":     `{"question":"q","difficulty":1,"category":1}`,
		"без difficulty": `{"question":"q","answer":"a","category":1}`,
		"без category":   `{"question":"q","answer":"a","difficulty":1}`,
		"пустой answer":  `{"question":"q","answer":"  ","difficulty":1,"category":1}`,
		"пустое тело":    `{}`,
		"не JSON":        `not json`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			w, resp := api.do(t, http.MethodPost, "/questions", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assertErrorEnvelope(t, resp, http.StatusBadRequest, "Bad Request")
		})
	}

	var count int64
	require.NoError(t, api.db.Model(&entity.Question{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSearchQuestions(t *testing.T) {
	api := newTestAPI(t, 12)

	w, resp := api.do(t, http.MethodPost, "/questions", `{"searchTerm":"number 11"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["questions"], 1)
	assert.Equal(t, float64(1), resp["total_questions"])
	assert.Equal(t, "1", resp["current_category"])

	// Регистр не важен, пагинация по 10
	w, resp = api.do(t, http.MethodPost, "/questions", `{"searchTerm":"QUESTION"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["questions"], 10)
	assert.Equal(t, float64(12), resp["total_questions"])

	w, resp = api.do(t, http.MethodPost, "/questions", `{"searchTerm":"applejacks"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, resp["questions"])
	assert.Equal(t, float64(0), resp["total_questions"])
	assert.Nil(t, resp["current_category"])
}

func TestGetQuestionsByCategory(t *testing.T) {
	api := newTestAPI(t, 5)

	w, resp := api.do(t, http.MethodGet, "/categories/2/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["questions"], 2)
	assert.Equal(t, float64(2), resp["total_questions"])
	assert.Equal(t, "2", resp["current_category"])
	for _, q := range resp["questions"].([]interface{}) {
		assert.Equal(t, "2", q.(map[string]interface{})["category"])
	}

	w, resp = api.do(t, http.MethodGet, "/categories/6/questions", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")

	w, _ = api.do(t, http.MethodGet, "/categories/abc/questions", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlayQuiz_PicksFromCategoryUntilExhausted(t *testing.T) {
	api := newTestAPI(t, 6)

	var previous []int
	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"quiz_category":{"id":1,"type":"Science"},"previous_questions":%s}`, jsonInts(previous))
		w, resp := api.do(t, http.MethodPost, "/quizzes", body)
		require.Equal(t, http.StatusOK, w.Code)

		q, ok := resp["question"].(map[string]interface{})
		require.True(t, ok, "ожидался вопрос, получено: %v", resp)
		assert.Equal(t, "1", q["category"])

		id := int(q["id"].(float64))
		assert.NotContains(t, previous, id)
		previous = append(previous, id)
	}

	body := fmt.Sprintf(`{"quiz_category":{"id":"1","type":"Science"},"previous_questions":%s}`, jsonInts(previous))
	w, resp := api.do(t, http.MethodPost, "/quizzes", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp, "question")
	assert.Nil(t, resp["question"])
}

func TestPlayQuiz_AllCategories(t *testing.T) {
	api := newTestAPI(t, 4)

	w, resp := api.do(t, http.MethodPost, "/quizzes",
		`{"quiz_category":{"id":0,"type":"click"},"previous_questions":[1,2,3]}`)

	require.Equal(t, http.StatusOK, w.Code)
	q := resp["question"].(map[string]interface{})
	assert.Equal(t, float64(4), q["id"])
}

func TestPlayQuiz_BadRequest(t *testing.T) {
	api := newTestAPI(t, 1)

	bodies := []string{
		`{}`,
		`{"previous_questions":[]}`,
		`{"quiz_category":{"id":1,"type":"Science"}}`,
		`{"quiz_category":{"type":"Science"},"previous_questions":[]}`,
	}
	for _, body := range bodies {
		w, resp := api.do(t, http.MethodPost, "/quizzes", body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assertErrorEnvelope(t, resp, http.StatusBadRequest, "Bad Request")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	api := newTestAPI(t, 1)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPatch, "/questions/1"},
		{http.MethodPut, "/questions"},
		{http.MethodDelete, "/categories"},
		{http.MethodGet, "/quizzes"},
	} {
		w, resp := api.do(t, tc.method, tc.path, "")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", tc.method, tc.path)
		assertErrorEnvelope(t, resp, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t, 0)

	w, resp := api.do(t, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assertErrorEnvelope(t, resp, http.StatusNotFound, "Resource Not Found")
}

func TestAccessControlHeadersOnEveryResponse(t *testing.T) {
	api := newTestAPI(t, 0)

	for _, path := range []string{"/categories", "/questions", "/nope"} {
		w, _ := api.do(t, http.MethodGet, path, "")

		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"), path)
		assert.Equal(t, "GET, POST, PATCH, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"), path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t, 0)

	w, resp := api.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])

	api.do(t, http.MethodGet, "/categories", "")
	w, _ = api.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `trivia_http_requests_total{method="GET",route="/categories",status="200"} 1`)
}

func jsonInts(ids []int) string {
	if len(ids) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(ids)
	return string(data)
}
