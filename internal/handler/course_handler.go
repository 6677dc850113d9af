package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"eduplatform/internal/repository"
)

type CourseRequest struct {
	Name string `json:"name" validate:"required,max=150"`
}

func (h *Handlers) ListCourses(w http.ResponseWriter, r *http.Request) {
	params, page, pageSize := h.listParams(r, "")

	courses, count, err := h.CourseService.ListCourses(r.Context(), params)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	next, previous := h.pageLinks(r, page, pageSize, count)
	WritePaginated(w, courses, count, next, previous)
}

func (h *Handlers) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]

	course, err := h.CourseService.GetCourse(r.Context(), courseID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, course, http.StatusOK)
}

func (h *Handlers) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Course name is required.", http.StatusBadRequest)
		return
	}

	course, err := h.CourseService.CreateCourse(r.Context(), repository.CreateCourseRequest{Name: req.Name})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, course, http.StatusCreated)
}

func (h *Handlers) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]

	var req CourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Course name is required.", http.StatusBadRequest)
		return
	}

	course, err := h.CourseService.UpdateCourse(r.Context(), repository.UpdateCourseRequest{
		CourseID: courseID,
		Name:     req.Name,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, course, http.StatusOK)
}

func (h *Handlers) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]

	if err := h.CourseService.DeleteCourse(r.Context(), courseID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, nil, http.StatusOK)
}
