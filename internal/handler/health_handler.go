package handlers

import (
	"net/http"
)

// HealthHandler проверяет доступность БД и возвращает число таблиц схемы.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	countTables, err := h.HealthService.CheckDB(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status":      "ok",
		"countTables": countTables,
	}, http.StatusOK)
}
