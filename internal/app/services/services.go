package services

import (
	"rewatch/internal/app/deps"
	drl "rewatch/internal/core/domain/rate_limiter"
	"rewatch/internal/core/services"
	collectgarbage "rewatch/internal/core/services/collect_garbage"
	createreminder "rewatch/internal/core/services/create_reminder"
	deletereminder "rewatch/internal/core/services/delete_reminder"
	firereminder "rewatch/internal/core/services/fire_reminder"
	handlenotificationclick "rewatch/internal/core/services/handle_notification_click"
	handletimer "rewatch/internal/core/services/handle_timer"
	listreminders "rewatch/internal/core/services/list_reminders"
	"rewatch/internal/core/services/observing"
	ratelimiting "rewatch/internal/core/services/rate_limiting"
	reconcilestartup "rewatch/internal/core/services/reconcile_startup"
	snoozereminder "rewatch/internal/core/services/snooze_reminder"
	stashvideo "rewatch/internal/core/services/stash_video"
	takevideo "rewatch/internal/core/services/take_video"
)

type Services struct {
	CreateReminder services.Service[createreminder.Input, createreminder.Result]
	DeleteReminder services.Service[deletereminder.Input, deletereminder.Result]
	ListReminders  services.Service[listreminders.Input, listreminders.Result]
	SnoozeReminder services.Service[snoozereminder.Input, snoozereminder.Result]

	FireReminder            services.Service[firereminder.Input, firereminder.Result]
	CollectGarbage          services.Service[collectgarbage.Input, collectgarbage.Result]
	HandleTimer             services.Service[handletimer.Input, handletimer.Result]
	HandleNotificationClick services.Service[handlenotificationclick.Input, handlenotificationclick.Result]
	ReconcileStartup        services.Service[reconcilestartup.Input, reconcilestartup.Result]

	StashVideo services.Service[stashvideo.Input, stashvideo.Result]
	TakeVideo  services.Service[takevideo.Input, takevideo.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}
	recorder := deps.MetricsRecorder
	rateLimit := drl.Limit{Value: deps.Config.RateLimitPerMinute, Interval: drl.Minute}

	s.CreateReminder = observing.WithMetrics(
		recorder,
		"create_reminder",
		ratelimiting.New(
			deps.Logger,
			deps.RateLimiter,
			"create_reminder",
			rateLimit,
			createreminder.New(
				deps.Logger,
				deps.ReminderRepository,
				deps.ReminderIDGenerator,
				deps.Timer,
				deps.Now,
			),
		),
		deps.Now,
	)
	s.DeleteReminder = observing.WithMetrics(
		recorder,
		"delete_reminder",
		deletereminder.New(deps.Logger, deps.ReminderRepository, deps.Timer),
		deps.Now,
	)
	s.ListReminders = observing.WithMetrics(
		recorder,
		"list_reminders",
		listreminders.New(deps.Logger, deps.ReminderRepository),
		deps.Now,
	)
	s.SnoozeReminder = observing.WithMetrics(
		recorder,
		"snooze_reminder",
		snoozereminder.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.Timer,
			deps.Notifier,
			deps.AutoClearer,
			snoozereminder.Settings{
				Icon:      deps.Config.NotificationIcon,
				AutoClear: deps.Config.SnoozeConfirmationAutoClear,
			},
			deps.Now,
		),
		deps.Now,
	)

	s.FireReminder = observing.WithMetrics(
		recorder,
		"fire_reminder",
		firereminder.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.Notifier,
			deps.AutoClearer,
			deps.Timer,
			recorder,
			firereminder.Settings{
				Icon:      deps.Config.NotificationIcon,
				AutoClear: deps.Config.NotificationAutoClear,
			},
			deps.Now,
		),
		deps.Now,
	)
	s.CollectGarbage = observing.WithMetrics(
		recorder,
		"collect_garbage",
		collectgarbage.New(
			deps.Logger,
			deps.ReminderRepository,
			recorder,
			deps.Config.CleanupMaxAge,
			deps.Now,
		),
		deps.Now,
	)
	s.HandleTimer = handletimer.New(deps.Logger, s.CollectGarbage, s.FireReminder)
	s.HandleNotificationClick = observing.WithMetrics(
		recorder,
		"handle_notification_click",
		handlenotificationclick.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.Notifier,
			deps.TabOpener,
		),
		deps.Now,
	)
	s.ReconcileStartup = observing.WithMetrics(
		recorder,
		"reconcile_startup",
		reconcilestartup.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.Notifier,
			deps.Timer,
			deps.Now,
		),
		deps.Now,
	)

	s.StashVideo = observing.WithMetrics(
		recorder,
		"stash_video",
		ratelimiting.New(
			deps.Logger,
			deps.RateLimiter,
			"stash_video",
			rateLimit,
			stashvideo.New(deps.Logger, deps.HandoffStore, deps.Config.HandoffTTL),
		),
		deps.Now,
	)
	s.TakeVideo = observing.WithMetrics(
		recorder,
		"take_video",
		takevideo.New(deps.Logger, deps.HandoffStore),
		deps.Now,
	)

	return s
}
