package desktopnotifier

import (
	"context"
	"rewatch/internal/core/domain/notification"
)

// Unavailable stands in when no notification service is reachable.
type Unavailable struct{}

func (Unavailable) Available() bool {
	return false
}

func (Unavailable) Show(ctx context.Context, id notification.ID, content notification.Content) (notification.ID, error) {
	return id, notification.ErrServiceUnavailable
}

func (Unavailable) Clear(ctx context.Context, id notification.ID) error {
	return notification.ErrServiceUnavailable
}

func (Unavailable) ListActive(ctx context.Context) ([]notification.ID, error) {
	return nil, notification.ErrServiceUnavailable
}
