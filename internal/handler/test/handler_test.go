package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"eduplatform/internal/config"
	handlers "eduplatform/internal/handler"
	"eduplatform/internal/repository"
	"eduplatform/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:  "test-secret-key",
		ServerPort:    8080,
		MaxUploadSize: 10 * 1024 * 1024,
		PageSize:      20,
		BaseURL:       "http://testserver",
	}
}

// authenticate подкладывает в контекст запроса данные, которые
// в боевом режиме выставляет auth middleware.
func authenticate(r *http.Request, userID string, isStaff bool, accessToken string) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, handlers.CtxUserID, userID)
	ctx = context.WithValue(ctx, handlers.CtxUsername, "user_"+userID)
	ctx = context.WithValue(ctx, handlers.CtxIsStaff, isStaff)
	ctx = context.WithValue(ctx, handlers.CtxAccessToken, accessToken)
	return r.WithContext(ctx)
}

// decodeEnvelope разбирает единый конверт ответа.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]interface{}
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)

	return response
}

// assertEnvelopeError проверяет конверт с ошибкой.
func assertEnvelopeError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)

	response := decodeEnvelope(t, rr)
	assert.Equal(t, false, response["success"])
	assert.Nil(t, response["data"])

	errBody, ok := response["error"].(map[string]interface{})
	assert.True(t, ok, "error должен быть объектом")
	assert.Equal(t, expectedMsg, errBody["errorMsg"])
	assert.Equal(t, float64(expectedStatus), errBody["errorId"])
}

// assertEnvelopeSuccess проверяет успешный конверт и возвращает data.
func assertEnvelopeSuccess(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int) interface{} {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)

	response := decodeEnvelope(t, rr)
	assert.Equal(t, true, response["success"])
	assert.Nil(t, response["error"])

	return response["data"]
}

func TestNewHandlers(t *testing.T) {
	// create mock object
	mockUserRepo := new(MockUserRepository)

	repo := &repository.Repository{
		User: mockUserRepo,
	}

	services := &service.Service{
		Auth:       new(MockAuthService),
		Course:     new(MockCourseService),
		Lesson:     new(MockLessonService),
		LessonFile: new(MockLessonFileService),
		Comment:    new(MockCommentService),
		Health:     new(MockHealthService),
	}

	handler := handlers.NewHandlers(repo, services, testConfig())

	assert.NotNil(t, handler.AuthService)
	assert.NotNil(t, handler.CourseService)
	assert.NotNil(t, handler.LessonService)
	assert.NotNil(t, handler.LessonFileService)
	assert.NotNil(t, handler.CommentService)
	assert.NotNil(t, handler.HealthService)
	assert.NotNil(t, handler.UserRepo)
	assert.NotNil(t, handler.Cfg)
	assert.NotNil(t, handler.Validate)
}

// createTestHandler собирает Handlers с подставленными моками.
func createTestHandler(mocks ...interface{}) *handlers.Handlers {
	h := &handlers.Handlers{
		Cfg:      testConfig(),
		Validate: validator.New(),
	}

	for _, m := range mocks {
		switch v := m.(type) {
		case *MockAuthService:
			h.AuthService = v
		case *MockCourseService:
			h.CourseService = v
		case *MockLessonService:
			h.LessonService = v
		case *MockLessonFileService:
			h.LessonFileService = v
		case *MockCommentService:
			h.CommentService = v
		case *MockHealthService:
			h.HealthService = v
		case *MockUserRepository:
			h.UserRepo = v
		}
	}

	return h
}
