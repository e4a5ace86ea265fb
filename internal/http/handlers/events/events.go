package events

import (
	"net/http"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes the browser extension to the event stream that carries
// tab-open requests.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
	stream    string
}

func New(log logging.Logger, sseServer *sse.Server, stream string) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if stream == "" {
		panic(e.NewNilArgumentError("stream"))
	}
	return &Handler{log: log, sseServer: sseServer, stream: stream}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	query.Set("stream", h.stream)
	r.URL.RawQuery = query.Encode()

	h.log.Info(r.Context(), "Subscribed to events.", logging.Entry("stream", h.stream))
	h.sseServer.ServeHTTP(rw, r)
	h.log.Info(r.Context(), "Unsubscribed from events.", logging.Entry("stream", h.stream))
}
