package consumers

import (
	"context"
	"rewatch/internal/app/deps"
	"rewatch/internal/app/services"
	dl "rewatch/internal/core/domain/logging"
)

// InitConsumers starts the event loop. The returned func stops it and waits
// for the event in progress.
func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	loop := NewEventLoop(
		deps.Logger,
		deps.TimerWakeups,
		deps.NotificationClicks,
		deps.Config.CleanupPeriod,
		services.HandleTimer,
		services.HandleNotificationClick,
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop.Run(ctx)
	}()

	deps.Logger.Info(ctx, "Event loop has started.", dl.Entry("cleanupPeriod", deps.Config.CleanupPeriod))
	return func() {
		cancel()
		<-done
		deps.Logger.Info(context.Background(), "Event loop has stopped.")
	}
}
