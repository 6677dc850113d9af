package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduplatform/internal/config"
	handlers "eduplatform/internal/handler"
)

type stubTokenRepo struct {
	blacklisted map[string]bool
}

func (s *stubTokenRepo) BlacklistAccessToken(ctx context.Context, token string) error {
	if s.blacklisted == nil {
		s.blacklisted = map[string]bool{}
	}
	s.blacklisted[token] = true
	return nil
}

func (s *stubTokenRepo) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	return s.blacklisted[token], nil
}

func signToken(t *testing.T, secret, userID, username string, isStaff bool) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"isStaff":  isStaff,
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret-key"}

	t.Run("Валидный токен кладёт пользователя в контекст", func(t *testing.T) {
		var gotUserID string
		var gotStaff bool

		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, _ = handlers.CurrentUserID(r)
			gotStaff = handlers.IsStaff(r)
			assert.NotEmpty(t, handlers.AccessToken(r))
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/lessons/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret-key", "user-1", "student", true))
		rr := httptest.NewRecorder()

		AuthMiddleware(cfg)(inner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-1", gotUserID)
		assert.True(t, gotStaff)
	})

	t.Run("Запрос без заголовка проходит анонимно", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodGet, "/lessons/", nil)
		rr := httptest.NewRecorder()

		AuthMiddleware(cfg)(okHandler(&called)).ServeHTTP(rr, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Повреждённый токен отклоняется", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodGet, "/lessons/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rr := httptest.NewRecorder()

		AuthMiddleware(cfg)(okHandler(&called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Токен с чужой подписью отклоняется", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodGet, "/lessons/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "another-secret", "user-1", "student", false))
		rr := httptest.NewRecorder()

		AuthMiddleware(cfg)(okHandler(&called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestBlacklistMiddleware(t *testing.T) {
	repo := &stubTokenRepo{blacklisted: map[string]bool{"revoked-token": true}}

	t.Run("Изменяющий запрос с заблокированным токеном", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodPost, "/lessons/", nil)
		req.Header.Set("Authorization", "Bearer revoked-token")
		rr := httptest.NewRecorder()

		BlacklistMiddleware(repo)(okHandler(&called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Authentication credentials were not provided.")
	})

	t.Run("GET с заблокированным токеном проходит", func(t *testing.T) {
		// чёрный список проверяется только на изменяющих методах
		called := false

		req := httptest.NewRequest(http.MethodGet, "/lessons/", nil)
		req.Header.Set("Authorization", "Bearer revoked-token")
		rr := httptest.NewRecorder()

		BlacklistMiddleware(repo)(okHandler(&called)).ServeHTTP(rr, req)

		assert.True(t, called)
	})

	t.Run("Изменяющий запрос с живым токеном проходит", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodPost, "/lessons/", nil)
		req.Header.Set("Authorization", "Bearer live-token")
		rr := httptest.NewRecorder()

		BlacklistMiddleware(repo)(okHandler(&called)).ServeHTTP(rr, req)

		assert.True(t, called)
	})

	t.Run("Изменяющий запрос без токена проходит", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodPost, "/register/", nil)
		rr := httptest.NewRecorder()

		BlacklistMiddleware(repo)(okHandler(&called)).ServeHTTP(rr, req)

		assert.True(t, called)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("Аутентифицированный запрос проходит", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodPost, "/logout/", nil)
		ctx := context.WithValue(req.Context(), handlers.CtxUserID, "user-1")
		rr := httptest.NewRecorder()

		RequireAuth(okHandler(&called)).ServeHTTP(rr, req.WithContext(ctx))

		assert.True(t, called)
	})

	t.Run("Анонимный запрос отклоняется", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodPost, "/logout/", nil)
		rr := httptest.NewRecorder()

		RequireAuth(okHandler(&called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestStaffOnly(t *testing.T) {
	t.Run("Staff проходит", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodPost, "/courses/", nil)
		ctx := context.WithValue(req.Context(), handlers.CtxUserID, "admin-1")
		ctx = context.WithValue(ctx, handlers.CtxIsStaff, true)
		rr := httptest.NewRecorder()

		StaffOnly(okHandler(&called)).ServeHTTP(rr, req.WithContext(ctx))

		assert.True(t, called)
	})

	t.Run("Обычный пользователь получает 403", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodPost, "/courses/", nil)
		ctx := context.WithValue(req.Context(), handlers.CtxUserID, "user-1")
		ctx = context.WithValue(ctx, handlers.CtxIsStaff, false)
		rr := httptest.NewRecorder()

		StaffOnly(okHandler(&called)).ServeHTTP(rr, req.WithContext(ctx))

		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Аноним получает 401", func(t *testing.T) {
		called := false

		req := httptest.NewRequest(http.MethodPost, "/courses/", nil)
		rr := httptest.NewRecorder()

		StaffOnly(okHandler(&called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestChain_Order(t *testing.T) {
	var order []string

	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	called := false
	chained := Chain(okHandler(&called), tag("inner"), tag("outer"))

	chained.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	// последний элемент цепочки оказывается снаружи
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.True(t, called)
}
