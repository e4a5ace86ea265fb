package handoff

import (
	"context"
	"errors"
	"time"
)

var ErrNoVideoData = errors.New("no video data stashed or it has expired")

// VideoData is what the page detector hands to the popup when the user asks
// for a reminder on the current page.
type VideoData struct {
	ResourceID string `json:"resourceId"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Thumbnail  string `json:"thumbnail"`
}

// Store keeps at most one VideoData record. Take consumes it.
type Store interface {
	Put(ctx context.Context, data VideoData, ttl time.Duration) error
	Take(ctx context.Context) (VideoData, error)
}
