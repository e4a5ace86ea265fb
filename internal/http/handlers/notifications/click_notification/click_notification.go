package clicknotification

import (
	"net/http"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/services"
	service "rewatch/internal/core/services/handle_notification_click"
	"rewatch/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

// Handler relays notification clicks from platforms where the server cannot
// observe them itself.
type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationID")
	if notificationID == "" {
		response.RenderError(rw, "invalid notification ID", http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(r.Context(), service.Input{NotificationID: notification.ID(notificationID)})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}
