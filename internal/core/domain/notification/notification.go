package notification

import (
	"context"
	"errors"
	"time"
)

var ErrServiceUnavailable = errors.New("notification service is not available")

type ID string

type Content struct {
	Title string
	Body  string
	Icon  string
}

// Notifier shows user-visible alerts keyed by ID. Callers check Available
// before use and skip when the facility is absent.
type Notifier interface {
	Available() bool
	Show(ctx context.Context, id ID, content Content) (ID, error)
	Clear(ctx context.Context, id ID) error
	ListActive(ctx context.Context) ([]ID, error)
}

// AutoClearer clears an alert after a delay regardless of user action.
type AutoClearer interface {
	ClearAfter(id ID, delay time.Duration)
}

// TabOpener asks the browser to open url in a new foreground tab.
type TabOpener interface {
	OpenTab(ctx context.Context, url string) error
}
