package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"eduplatform/internal/repository"
)

// APIError - тело ошибки в едином конверте ответа.
// isFriendly показывает, можно ли показывать errorMsg пользователю как есть.
type APIError struct {
	ErrorID    int    `json:"errorId"`
	IsFriendly bool   `json:"isFriendly"`
	ErrorMsg   string `json:"errorMsg"`
}

// Envelope - единый конверт всех ответов API.
type Envelope struct {
	Data    interface{} `json:"data"`
	Error   *APIError   `json:"error"`
	Success bool        `json:"success"`
}

// PaginatedEnvelope - конверт списочных ответов с постраничным выводом.
type PaginatedEnvelope struct {
	Data     interface{} `json:"data"`
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Error    *APIError   `json:"error"`
	Success  bool        `json:"success"`
}

// WriteError отправляет конверт с ошибкой.
// Ошибки 5xx помечаются как недружественные и скрываются за общим текстом.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	friendly := statusCode < http.StatusInternalServerError
	if !friendly {
		message = "Internal server error."
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Envelope{
		Data: nil,
		Error: &APIError{
			ErrorID:    statusCode,
			IsFriendly: friendly,
			ErrorMsg:   message,
		},
		Success: false,
	})
}

// WriteServiceError сопоставляет ошибки нижних слоёв с HTTP статусами.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "Not found.", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		WriteError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Внутренняя ошибка: %v", err)
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}

// WriteSuccess отправляет успешный конверт.
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Envelope{
		Data:    data,
		Error:   nil,
		Success: true,
	})
}

// WritePaginated отправляет списочный конверт с count/next/previous.
func WritePaginated(w http.ResponseWriter, data interface{}, count int, next, previous *string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(PaginatedEnvelope{
		Data:     data,
		Count:    count,
		Next:     next,
		Previous: previous,
		Error:    nil,
		Success:  true,
	})
}
