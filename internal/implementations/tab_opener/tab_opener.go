package tabopener

import (
	"context"
	"encoding/json"
	"fmt"
	e "rewatch/internal/core/domain/errors"

	"github.com/google/uuid"
	"github.com/r3labs/sse/v2"
)

const (
	DefaultStream = "events"
	OpenTabEvent  = "open_tab"
)

type openTabPayload struct {
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// SSE asks the browser extension to open tabs by publishing events on a
// server-sent events stream it listens to.
type SSE struct {
	sseServer *sse.Server
	stream    string
}

func NewSSE(sseServer *sse.Server, stream string) *SSE {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if stream == "" {
		stream = DefaultStream
	}
	if !sseServer.StreamExists(stream) {
		sseServer.CreateStream(stream)
	}
	return &SSE{sseServer: sseServer, stream: stream}
}

func (s *SSE) OpenTab(ctx context.Context, url string) error {
	data, err := json.Marshal(openTabPayload{URL: url, Active: true})
	if err != nil {
		return fmt.Errorf("could not encode open tab event: %w", err)
	}
	s.sseServer.Publish(s.stream, &sse.Event{
		ID:    []byte(uuid.NewString()),
		Event: []byte(OpenTabEvent),
		Data:  data,
	})
	return nil
}
