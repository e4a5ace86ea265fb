package listreminders

import (
	"net/http"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/services"
	service "rewatch/internal/core/services/list_reminders"
	"rewatch/internal/http/handlers/response"
	"time"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
	now     func() time.Time
}

func New(
	service services.Service[service.Input, service.Result],
	now func() time.Time,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Handler{service: service, now: now}
}

type Result struct {
	Reminders  []response.Reminder `json:"reminders"`
	TotalCount uint                `json:"total_count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	now := h.now()
	reminders := make([]response.Reminder, len(result.Reminders))
	for ix, rem := range result.Reminders {
		reminders[ix].FromDomainType(rem, now)
	}
	response.Render(
		rw,
		Result{Reminders: reminders, TotalCount: uint(len(reminders))},
		http.StatusOK,
	)
}
