package snoozereminder

import (
	"context"
	"errors"
	"fmt"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/core/services"
	"time"
)

const (
	DefaultDelay      = time.Hour
	ConfirmationTitle = "⏰ Reminder Snoozed"
)

var ErrInvalidDelay = errors.New("snooze delay must be positive")

type Settings struct {
	Icon      string
	AutoClear time.Duration
}

type Input struct {
	ReminderID reminder.ID
	Delay      time.Duration
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log         logging.Logger
	repository  reminder.Repository
	timer       timer.Timer
	notifier    notification.Notifier
	autoClearer notification.AutoClearer
	settings    Settings
	now         func() time.Time
}

func New(
	log logging.Logger,
	repository reminder.Repository,
	timer timer.Timer,
	notifier notification.Notifier,
	autoClearer notification.AutoClearer,
	settings Settings,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if timer == nil {
		panic(e.NewNilArgumentError("timer"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	if autoClearer == nil {
		panic(e.NewNilArgumentError("autoClearer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:         log,
		repository:  repository,
		timer:       timer,
		notifier:    notifier,
		autoClearer: autoClearer,
		settings:    settings,
		now:         now,
	}
}

// Run postpones the next fire of a reminder by input.Delay from now. The
// recurrence interval stays as it was.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Delay <= 0 {
		return result, ErrInvalidDelay
	}
	at := s.now().Add(input.Delay)

	var previous time.Time
	rem, err := s.repository.Update(ctx, input.ReminderID, func(r *reminder.Reminder) {
		previous = r.NextReminder
		r.Snoozed(at)
	})
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			s.log.Info(ctx, "Snoozed reminder not found.", logging.Entry("input", input))
		} else {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	// Arming replaces the pending timer.
	if err := s.timer.Arm(ctx, rem.ID.TimerName(), at); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		s.restore(ctx, rem.ID, previous)
		return result, err
	}

	s.confirm(ctx, input.Delay)
	s.log.Info(
		ctx,
		"Reminder snoozed.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("until", at),
	)
	result.Reminder = rem
	return result, nil
}

// restore puts back the schedule a failed snooze replaced.
func (s *service) restore(ctx context.Context, id reminder.ID, previous time.Time) {
	_, err := s.repository.Update(ctx, id, func(r *reminder.Reminder) { r.NextReminder = previous })
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", id))
		return
	}
	if err := s.timer.Arm(ctx, id.TimerName(), previous); err != nil {
		s.log.Warning(
			ctx,
			"Timer is not armed until the next start.",
			logging.Entry("reminderID", id),
			logging.Entry("err", err),
		)
	}
}

func (s *service) confirm(ctx context.Context, delay time.Duration) {
	if !s.notifier.Available() {
		s.log.Warning(ctx, "Notifications are not available, snooze is not confirmed.")
		return
	}
	content := notification.Content{
		Title: ConfirmationTitle,
		Body:  "You'll be reminded again in " + FormatDelay(delay),
		Icon:  s.settings.Icon,
	}
	if _, err := s.notifier.Show(ctx, reminder.SnoozeConfirmationID, content); err != nil {
		s.log.Warning(ctx, "Could not show snooze confirmation.", logging.Entry("err", err))
		return
	}
	s.autoClearer.ClearAfter(reminder.SnoozeConfirmationID, s.settings.AutoClear)
}

// FormatDelay renders a delay in whole hours and minutes, e.g. "1 hour" or
// "2 hours 30 minutes".
func FormatDelay(delay time.Duration) string {
	hours := int(delay / time.Hour)
	minutes := int((delay % time.Hour) / time.Minute)
	switch {
	case hours > 0 && minutes > 0:
		return plural(hours, "hour") + " " + plural(minutes, "minute")
	case hours > 0:
		return plural(hours, "hour")
	case minutes > 0:
		return plural(minutes, "minute")
	default:
		return "less than a minute"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
