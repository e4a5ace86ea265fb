package deletereminder

import (
	"net/http"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/services"
	service "rewatch/internal/core/services/delete_reminder"
	"rewatch/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// ServeHTTP answers 204 whether or not the reminder existed.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "reminderID")
	if reminderID == "" {
		response.RenderError(rw, "invalid reminder ID", http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(r.Context(), service.Input{ReminderID: reminder.ID(reminderID)})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}
