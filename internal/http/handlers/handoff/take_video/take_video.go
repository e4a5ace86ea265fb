package takevideo

import (
	"errors"
	"net/http"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/handoff"
	"rewatch/internal/core/services"
	service "rewatch/internal/core/services/take_video"
	"rewatch/internal/http/handlers/response"
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

type Result struct {
	ResourceID string `json:"resource_id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Thumbnail  string `json:"thumbnail"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		switch {
		case errors.Is(err, handoff.ErrNoVideoData):
			response.RenderNotFound(rw, err.Error())
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, Result{
		ResourceID: result.Data.ResourceID,
		URL:        result.Data.URL,
		Title:      result.Data.Title,
		Channel:    result.Data.Channel,
		Thumbnail:  result.Data.Thumbnail,
	}, http.StatusOK)
}
