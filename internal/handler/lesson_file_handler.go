package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) ListLessonFiles(w http.ResponseWriter, r *http.Request) {
	params, page, pageSize := h.listParams(r, "lesson")

	files, count, err := h.LessonFileService.ListFiles(r.Context(), params)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	next, previous := h.pageLinks(r, page, pageSize, count)
	WritePaginated(w, files, count, next, previous)
}

func (h *Handlers) GetLessonFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["id"]

	file, err := h.LessonFileService.GetFile(r.Context(), fileID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, file, http.StatusOK)
}

// UploadLessonFile принимает multipart-форму с полями lesson и file,
// объект уходит в MinIO, в БД сохраняется только URL.
func (h *Handlers) UploadLessonFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid multipart form.", http.StatusBadRequest)
		return
	}

	lessonID := r.FormValue("lesson")
	if lessonID == "" {
		WriteError(w, "Lesson is required.", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "File is required.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > h.Cfg.MaxUploadSize {
		WriteError(w, "File is too large.", http.StatusBadRequest)
		return
	}

	lessonFile, err := h.LessonFileService.UploadFile(r.Context(), lessonID, header.Filename, file, header.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, lessonFile, http.StatusCreated)
}

func (h *Handlers) DeleteLessonFile(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["id"]

	if err := h.LessonFileService.DeleteFile(r.Context(), fileID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, nil, http.StatusOK)
}
