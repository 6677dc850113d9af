package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"eduplatform/internal/repository"
)

type CreateCommentRequest struct {
	Text     string  `json:"text" validate:"required"`
	LessonID string  `json:"lessonId" validate:"required"`
	ReplyTo  *string `json:"replyTo"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	params, page, pageSize := h.listParams(r, "lesson")

	comments, count, err := h.CommentService.ListComments(r.Context(), params)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	next, previous := h.pageLinks(r, page, pageSize, count)
	WritePaginated(w, comments, count, next, previous)
}

func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	comment, err := h.CommentService.GetComment(r.Context(), commentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

// CreateComment доступен любому аутентифицированному пользователю,
// автор назначается автоматически.
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
		return
	}

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Text and lessonId are required.", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), repository.CreateCommentRequest{
		Text:     req.Text,
		LessonID: req.LessonID,
		ReplyTo:  req.ReplyTo,
		AuthorID: userID,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Text is required.", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentService.UpdateComment(r.Context(), repository.UpdateCommentRequest{
		CommentID: commentID,
		Text:      req.Text,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]

	if err := h.CommentService.DeleteComment(r.Context(), commentID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, nil, http.StatusOK)
}
