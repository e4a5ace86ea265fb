package stashvideo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/handoff"
	ratelimiter "rewatch/internal/core/domain/rate_limiter"
	"rewatch/internal/core/services"
	service "rewatch/internal/core/services/stash_video"
	"rewatch/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
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

type Input struct {
	ResourceID string `json:"resource_id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Thumbnail  string `json:"thumbnail"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ResourceID, validation.Required, validation.Length(1, 64)),
		validation.Field(&i.URL, validation.Required, is.URL),
		validation.Field(&i.Thumbnail, is.URL),
	)
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

	_, err := h.service.Run(r.Context(), service.Input{Data: handoff.VideoData{
		ResourceID: input.ResourceID,
		URL:        input.URL,
		Title:      input.Title,
		Channel:    input.Channel,
		Thumbnail:  input.Thumbnail,
	}})
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	rw.WriteHeader(http.StatusNoContent)
}
