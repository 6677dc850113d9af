package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eduplatform/internal/config"
	handlers "eduplatform/internal/handler"
	"eduplatform/internal/repository"
)

type Middleware func(http.Handler) http.Handler

// bearerToken извлекает токен из заголовка Authorization.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// AuthMiddleware разбирает JWT и кладёт данные пользователя в контекст.
// Запрос без заголовка Authorization проходит дальше анонимным,
// требования аутентификации навешиваются на конкретные маршруты.
func AuthMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			// Parse token
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// Checking the signature algorithm
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecretKey), nil
			})

			if err != nil || !token.Valid {
				handlers.WriteError(w, "Invalid or expired token.", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				handlers.WriteError(w, "Invalid token claims.", http.StatusUnauthorized)
				return
			}

			userID, ok1 := claims["userId"].(string)
			username, ok2 := claims["username"].(string)
			isStaff, _ := claims["isStaff"].(bool)

			if !ok1 || !ok2 {
				handlers.WriteError(w, "Invalid token claims.", http.StatusUnauthorized)
				return
			}

			// Adding user data to the context
			ctx := r.Context()
			ctx = context.WithValue(ctx, handlers.CtxUserID, userID)
			ctx = context.WithValue(ctx, handlers.CtxUsername, username)
			ctx = context.WithValue(ctx, handlers.CtxIsStaff, isStaff)
			ctx = context.WithValue(ctx, handlers.CtxAccessToken, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BlacklistMiddleware отклоняет изменяющие запросы с заблокированным
// access token. Читающие запросы чёрный список не проверяют.
func BlacklistMiddleware(tokenRepo repository.TokenRepository) Middleware {
	mutating := map[string]bool{
		http.MethodPost:   true,
		http.MethodPut:    true,
		http.MethodPatch:  true,
		http.MethodDelete: true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mutating[r.Method] {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			blacklisted, err := tokenRepo.IsBlacklisted(r.Context(), tokenString)
			if err != nil {
				handlers.WriteError(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if blacklisted {
				handlers.WriteError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth пропускает только аутентифицированные запросы.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := handlers.CurrentUserID(r); !ok {
			handlers.WriteError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StaffOnly пропускает только пользователей с ролью staff.
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := handlers.CurrentUserID(r); !ok {
			handlers.WriteError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
			return
		}

		if !handlers.IsStaff(r) {
			handlers.WriteError(w, "You do not have permission to perform this action.", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.RequestURI, time.Since(start))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
