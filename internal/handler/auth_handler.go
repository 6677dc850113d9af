package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"regexp"
	"unicode/utf8"

	"eduplatform/internal/repository"
)

type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password1 string `json:"password1" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

type UserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"isStaff"`
	IsActive bool   `json:"isActive"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
)

// Register регистрирует нового пользователя.
// Доступен только неаутентифицированным вызывающим.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	// already logged in
	if _, ok := CurrentUserID(r); ok {
		WriteError(w, "You are already authenticated.", http.StatusForbidden)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "All fields are required.", http.StatusBadRequest)
		return
	}

	// username verification
	if !usernamePattern.MatchString(req.Username) {
		WriteError(w, "Username can only contain letters, numbers, and underscores.", http.StatusBadRequest)
		return
	}

	// email verification
	if !emailPattern.MatchString(req.Email) {
		WriteError(w, "Invalid email entered.", http.StatusBadRequest)
		return
	}

	// password verification
	if req.Password1 != req.Password2 {
		WriteError(w, "Passwords do not match.", http.StatusBadRequest)
		return
	}

	length := utf8.RuneCountInString(req.Password1)
	if length < 8 || length > 128 {
		WriteError(w, "Password must be between 8 and 128 characters.", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), repository.RegisterUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password1,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			WriteError(w, "Username is already taken.", http.StatusBadRequest)
			return
		}
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"userId":   user.UserID,
		"username": user.Username,
		"email":    user.Email,
	}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Username and password are required.", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, "Invalid username or password.", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Email:    user.Email,
			IsStaff:  user.IsStaff,
			IsActive: user.IsActive,
		},
	}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	if req.Refresh == "" {
		WriteError(w, "Refresh token is required.", http.StatusBadRequest)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.Refresh)
	if err != nil {
		WriteError(w, "Refresh token is expired or invalid.", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Email:    user.Email,
			IsStaff:  user.IsStaff,
			IsActive: user.IsActive,
		},
	}, http.StatusOK)
}

// Logout инвалидирует refresh token из query-параметра и блокирует
// access token вызывающего. Любая ошибка сворачивается в общий 400:
// внешний ответ не раскрывает причину, детали остаются в логе.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := r.URL.Query().Get("refresh")
	accessToken := AccessToken(r)

	err := h.AuthService.Logout(r.Context(), accessToken, refreshToken)
	if err != nil {
		log.Printf("Ошибка logout: %v", err)
		WriteError(w, "Bad request.", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, nil, http.StatusOK)
}

// Me возвращает проекцию текущего пользователя.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
		IsActive: user.IsActive,
	}, http.StatusOK)
}
