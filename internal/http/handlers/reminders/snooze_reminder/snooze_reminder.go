package snoozereminder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/services"
	service "rewatch/internal/core/services/snooze_reminder"
	"rewatch/internal/http/handlers/response"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const MaxDelayMinutes = 7 * 24 * 60

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

type Input struct {
	DelayMinutes *int `json:"delay_minutes"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

// FromJSON accepts an empty body.
func (i *Input) FromJSON(r io.Reader) error {
	err := json.NewDecoder(r).Decode(i)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.DelayMinutes, validation.Min(1), validation.Max(MaxDelayMinutes)),
	)
}

func (i Input) Delay() time.Duration {
	if i.DelayMinutes == nil {
		return service.DefaultDelay
	}
	return time.Duration(*i.DelayMinutes) * time.Minute
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	reminderID := chi.URLParam(r, "reminderID")
	if reminderID == "" {
		response.RenderError(rw, "invalid reminder ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{ReminderID: reminder.ID(reminderID), Delay: input.Delay()},
	)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			response.RenderNotFound(rw, err.Error())
		case errors.Is(err, service.ErrInvalidDelay):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder, h.now())
	response.Render(rw, Result{Reminder: rem}, http.StatusOK)
}
