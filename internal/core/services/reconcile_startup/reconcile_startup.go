package reconcilestartup

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	Cleared int
	Armed   int
}

type service struct {
	log        logging.Logger
	repository reminder.Repository
	notifier   notification.Notifier
	timer      timer.Timer
	now        func() time.Time
}

// New builds the startup pass. It clears alerts left over from a previous
// run and arms a timer for every stored reminder, overdue ones for now.
func New(
	log logging.Logger,
	repository reminder.Repository,
	notifier notification.Notifier,
	timer timer.Timer,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if timer == nil {
		panic(e.NewNilArgumentError("timer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		repository: repository,
		notifier:   notifier,
		timer:      timer,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	result.Cleared = s.clearNotifications(ctx)

	reminders, err := s.repository.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	now := s.now()
	for _, rem := range reminders {
		at := rem.NextReminder
		if at.Before(now) {
			at = now
		}
		if err := s.timer.Arm(ctx, rem.ID.TimerName(), at); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			continue
		}
		result.Armed++
	}

	s.log.Info(
		ctx,
		"Startup reconciliation finished.",
		logging.Entry("clearedNotifications", result.Cleared),
		logging.Entry("armedTimers", result.Armed),
		logging.Entry("reminders", len(reminders)),
	)
	return result, nil
}

func (s *service) clearNotifications(ctx context.Context) int {
	if !s.notifier.Available() {
		s.log.Warning(ctx, "Notifications are not available, skip clearing.")
		return 0
	}
	active, err := s.notifier.ListActive(ctx)
	if err != nil {
		s.log.Warning(ctx, "Could not list active notifications.", logging.Entry("err", err))
		return 0
	}
	cleared := 0
	for _, id := range active {
		if !reminder.IsOwnNotification(id) {
			continue
		}
		if err := s.notifier.Clear(ctx, id); err != nil {
			s.log.Warning(ctx, "Could not clear notification.", logging.Entry("notificationID", id), logging.Entry("err", err))
			continue
		}
		cleared++
	}
	return cleared
}
