package consumers

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/core/services"
	handlenotificationclick "rewatch/internal/core/services/handle_notification_click"
	handletimer "rewatch/internal/core/services/handle_timer"
	"time"
)

// EventLoop handles timer wake-ups, notification clicks and the periodic
// cleanup one at a time. A nil source is never selected.
type EventLoop struct {
	log           logging.Logger
	wakeups       timer.Wakeups
	clicks        <-chan notification.ID
	cleanupPeriod time.Duration
	handleTimer   services.Service[handletimer.Input, handletimer.Result]
	handleClick   services.Service[handlenotificationclick.Input, handlenotificationclick.Result]
}

func NewEventLoop(
	log logging.Logger,
	wakeups timer.Wakeups,
	clicks <-chan notification.ID,
	cleanupPeriod time.Duration,
	handleTimer services.Service[handletimer.Input, handletimer.Result],
	handleClick services.Service[handlenotificationclick.Input, handlenotificationclick.Result],
) *EventLoop {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if handleTimer == nil {
		panic(e.NewNilArgumentError("handleTimer"))
	}
	if handleClick == nil {
		panic(e.NewNilArgumentError("handleClick"))
	}
	if cleanupPeriod <= 0 {
		panic("cleanup period must be positive")
	}
	return &EventLoop{
		log:           log,
		wakeups:       wakeups,
		clicks:        clicks,
		cleanupPeriod: cleanupPeriod,
		handleTimer:   handleTimer,
		handleClick:   handleClick,
	}
}

// Run blocks until ctx is done. A closed source is dropped from the loop.
func (l *EventLoop) Run(ctx context.Context) {
	cleanup := time.NewTicker(l.cleanupPeriod)
	defer cleanup.Stop()

	var timerFired <-chan timer.Wakeup
	if l.wakeups != nil {
		timerFired = l.wakeups.Fired()
	}
	clicks := l.clicks
	for {
		select {
		case <-ctx.Done():
			return
		case wakeup, ok := <-timerFired:
			if !ok {
				timerFired = nil
				continue
			}
			l.onWakeup(ctx, wakeup)
		case id, ok := <-clicks:
			if !ok {
				clicks = nil
				continue
			}
			l.onClick(ctx, id)
		case <-cleanup.C:
			l.onTimer(ctx, timer.Cleanup)
		}
	}
}

// onWakeup drops wake-ups whose timer was disarmed or re-armed while they
// were queued.
func (l *EventLoop) onWakeup(ctx context.Context, wakeup timer.Wakeup) {
	current, err := l.wakeups.Confirm(ctx, wakeup)
	if err != nil {
		l.log.Warning(ctx, "Could not confirm timer.", logging.Entry("name", wakeup.Name), logging.Entry("err", err))
		return
	}
	if !current {
		l.log.Debug(ctx, "Stale timer skipped.", logging.Entry("name", wakeup.Name))
		return
	}
	l.onTimer(ctx, wakeup.Name)
}

func (l *EventLoop) onTimer(ctx context.Context, name timer.Name) {
	l.log.Debug(ctx, "Timer fired.", logging.Entry("name", name))
	if _, err := l.handleTimer.Run(ctx, handletimer.Input{Name: name}); err != nil {
		l.log.Warning(ctx, "Timer handling failed.", logging.Entry("name", name), logging.Entry("err", err))
	}
}

func (l *EventLoop) onClick(ctx context.Context, id notification.ID) {
	l.log.Debug(ctx, "Notification clicked.", logging.Entry("notificationID", id))
	_, err := l.handleClick.Run(ctx, handlenotificationclick.Input{NotificationID: id})
	if err != nil {
		l.log.Warning(
			ctx,
			"Notification click handling failed.",
			logging.Entry("notificationID", id),
			logging.Entry("err", err),
		)
	}
}
