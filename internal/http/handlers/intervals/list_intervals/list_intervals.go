package listintervals

import (
	"net/http"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/http/handlers/response"
)

type Interval struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	DurationMs int64  `json:"duration_ms"`
	IsDefault  bool   `json:"is_default"`
}

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	known := reminder.Intervals()
	intervals := make([]Interval, len(known))
	for ix, interval := range known {
		intervals[ix] = Interval{
			Code:       string(interval),
			Label:      interval.Label(),
			DurationMs: interval.Duration().Milliseconds(),
			IsDefault:  interval == reminder.DefaultInterval,
		}
	}
	response.Render(rw, intervals, http.StatusOK)
}
