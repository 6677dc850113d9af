package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"eduplatform/internal/models"
	"eduplatform/internal/reaction"
	"eduplatform/internal/repository"
)

type CreateLessonRequest struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
	CourseID    string `json:"courseId" validate:"required"`
}

type UpdateLessonRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	CourseID    *string `json:"courseId"`
}

// LessonDetailResponse - представление урока с вложенными курсом и учителем.
type LessonDetailResponse struct {
	models.Lesson
	Course  *models.Course `json:"course"`
	Teacher *UserResponse  `json:"teacher"`
}

func (h *Handlers) ListLessons(w http.ResponseWriter, r *http.Request) {
	params, page, pageSize := h.listParams(r, "course")

	lessons, count, err := h.LessonService.ListLessons(r.Context(), params)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	next, previous := h.pageLinks(r, page, pageSize, count)
	WritePaginated(w, lessons, count, next, previous)
}

func (h *Handlers) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	lesson, err := h.LessonService.GetLesson(r.Context(), lessonID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	response := LessonDetailResponse{Lesson: *lesson}

	// вложенные представления, ошибки загрузки не фатальны для ответа
	if course, err := h.CourseService.GetCourse(r.Context(), lesson.CourseID); err == nil {
		response.Course = course
	}
	if teacher, err := h.UserRepo.GetUserByID(r.Context(), lesson.TeacherID); err == nil {
		response.Teacher = &UserResponse{
			UserID:   teacher.UserID,
			Username: teacher.Username,
			Email:    teacher.Email,
			IsStaff:  teacher.IsStaff,
			IsActive: teacher.IsActive,
		}
	}

	WriteSuccess(w, response, http.StatusOK)
}

// CreateLesson доступен любому аутентифицированному пользователю,
// создатель автоматически назначается учителем урока.
func (h *Handlers) CreateLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
		return
	}

	var req CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Title and courseId are required.", http.StatusBadRequest)
		return
	}

	lesson, err := h.LessonService.CreateLesson(r.Context(), repository.CreateLessonRequest{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
		CourseID:    req.CourseID,
		TeacherID:   userID,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lesson, http.StatusCreated)
}

func (h *Handlers) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	var req UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	lesson, err := h.LessonService.UpdateLesson(r.Context(), repository.UpdateLessonRequest{
		LessonID:    lessonID,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
		CourseID:    req.CourseID,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lesson, http.StatusOK)
}

func (h *Handlers) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID := mux.Vars(r)["id"]

	if err := h.LessonService.DeleteLesson(r.Context(), lessonID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, nil, http.StatusOK)
}

// LikeLesson обрабатывает POST /lessons/{id}/like/.
func (h *Handlers) LikeLesson(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, reaction.Like)
}

// DislikeLesson обрабатывает POST /lessons/{id}/dislike/.
func (h *Handlers) DislikeLesson(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, reaction.Dislike)
}

func (h *Handlers) react(w http.ResponseWriter, r *http.Request, desired reaction.Kind) {
	lessonID := mux.Vars(r)["id"]

	userID, ok := CurrentUserID(r)
	if !ok {
		WriteError(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
		return
	}

	likeCount, dislikeCount, err := h.LessonService.React(r.Context(), lessonID, userID, desired)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"id":      lessonID,
		"like":    likeCount,
		"dislike": dislikeCount,
	}, http.StatusOK)
}
