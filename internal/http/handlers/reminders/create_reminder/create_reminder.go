package createreminder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "rewatch/internal/core/domain/common"
	e "rewatch/internal/core/domain/errors"
	ratelimiter "rewatch/internal/core/domain/rate_limiter"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/services"
	service "rewatch/internal/core/services/create_reminder"
	"rewatch/internal/http/handlers/response"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const NoteMaxLength = 1000

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

type Video struct {
	ResourceID string `json:"resource_id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Thumbnail  string `json:"thumbnail"`
}

func (v Video) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.ResourceID, validation.Required, validation.Length(1, 64)),
		validation.Field(&v.URL, validation.Required, is.URL),
		validation.Field(&v.Title, validation.Length(0, 512)),
		validation.Field(&v.Channel, validation.Length(0, 256)),
		validation.Field(&v.Thumbnail, is.URL),
	)
}

type Input struct {
	Video    Video   `json:"video"`
	Interval string  `json:"interval"`
	Note     *string `json:"note"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Video),
		validation.Field(&i.Interval, validation.In(knownIntervals()...)),
		validation.Field(&i.Note, validation.Length(0, NoteMaxLength)),
	)
}

func knownIntervals() []interface{} {
	intervals := reminder.Intervals()
	codes := make([]interface{}, len(intervals))
	for ix, interval := range intervals {
		codes[ix] = string(interval)
	}
	return codes
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	var note c.Optional[string]
	if input.Note != nil && *input.Note != "" {
		note = c.NewOptional(*input.Note, true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Video: reminder.Video{
				ResourceID: input.Video.ResourceID,
				URL:        input.Video.URL,
				Title:      input.Video.Title,
				Channel:    input.Video.Channel,
				Thumbnail:  input.Video.Thumbnail,
			},
			Interval: reminder.Interval(input.Interval),
			Note:     note,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderAlreadyExists):
			response.RenderError(rw, err.Error(), http.StatusConflict)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder, h.now())
	response.Render(rw, Result{Reminder: rem}, http.StatusCreated)
}
