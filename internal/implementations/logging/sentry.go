package logging

import (
	"context"
	"rewatch/internal/core/domain/logging"

	"github.com/getsentry/sentry-go"
)

// SentryReporting logs through the wrapped logger and reports error records
// to Sentry. The first error-valued entry becomes the captured exception.
type SentryReporting struct {
	logging.Logger
	hub *sentry.Hub
}

func WithSentry(logger logging.Logger, hub *sentry.Hub) *SentryReporting {
	if logger == nil {
		panic("logger must not be nil")
	}
	if hub == nil {
		panic("hub must not be nil")
	}
	return &SentryReporting{Logger: logger, hub: hub}
}

func (l *SentryReporting) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.Logger.Error(ctx, msg, entries...)

	hub := l.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		var captured error
		for _, entry := range entries {
			if err, ok := entry.Value.(error); ok && captured == nil {
				captured = err
				continue
			}
			scope.SetExtra(entry.Key, entry.Value)
		}
		if captured == nil {
			hub.CaptureMessage(msg)
			return
		}
		scope.SetExtra("message", msg)
		hub.CaptureException(captured)
	})
}
