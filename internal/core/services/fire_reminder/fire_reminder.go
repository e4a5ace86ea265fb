package firereminder

import (
	"context"
	"errors"
	"fmt"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/metrics"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/core/services"
	"time"
)

const (
	Title         = "📹 Video Reminder"
	FallbackTitle = "Video Reminder"
)

type Settings struct {
	Icon      string
	AutoClear time.Duration
}

type Input struct {
	ReminderID reminder.ID
}

type Result struct {
	Reminder  reminder.Reminder
	Found     bool
	Displayed bool
}

type service struct {
	log         logging.Logger
	repository  reminder.Repository
	notifier    notification.Notifier
	autoClearer notification.AutoClearer
	timer       timer.Timer
	recorder    metrics.Recorder
	settings    Settings
	now         func() time.Time
}

func New(
	log logging.Logger,
	repository reminder.Repository,
	notifier notification.Notifier,
	autoClearer notification.AutoClearer,
	timer timer.Timer,
	recorder metrics.Recorder,
	settings Settings,
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
	if autoClearer == nil {
		panic(e.NewNilArgumentError("autoClearer"))
	}
	if timer == nil {
		panic(e.NewNilArgumentError("timer"))
	}
	if recorder == nil {
		panic(e.NewNilArgumentError("recorder"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:         log,
		repository:  repository,
		notifier:    notifier,
		autoClearer: autoClearer,
		timer:       timer,
		recorder:    recorder,
		settings:    settings,
		now:         now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	reminders, err := s.repository.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	rem, ok := reminder.Collection(reminders).Find(input.ReminderID)
	if !ok {
		s.log.Info(ctx, "Fired reminder not found, skip.", logging.Entry("reminderID", input.ReminderID))
		return result, nil
	}
	result.Found = true

	result.Displayed = s.display(ctx, rem)
	s.recorder.ReminderFired(result.Displayed)

	now := s.now()
	updated, err := s.repository.Update(ctx, rem.ID, func(r *reminder.Reminder) { r.Triggered(now) })
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			s.log.Info(ctx, "Reminder deleted while firing, skip re-arming.", logging.Entry("reminderID", rem.ID))
			return result, nil
		}
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		return result, err
	}
	result.Reminder = updated

	if err := s.timer.Arm(ctx, updated.ID.TimerName(), updated.NextReminder); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder fired.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("displayed", result.Displayed),
		logging.Entry("nextReminder", updated.NextReminder),
	)
	return result, nil
}

func (s *service) display(ctx context.Context, rem reminder.Reminder) bool {
	if !s.notifier.Available() {
		s.log.Warning(ctx, "Notifications are not available.", logging.Entry("reminderID", rem.ID))
		return false
	}

	id := rem.ID.NotificationID()
	_, err := s.notifier.Show(ctx, id, Content(rem, s.settings.Icon))
	if err != nil {
		s.log.Warning(
			ctx,
			"Could not show reminder notification, trying fallback.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("err", err),
		)
		_, err = s.notifier.Show(ctx, id, FallbackContent(rem))
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		return false
	}

	s.autoClearer.ClearAfter(id, s.settings.AutoClear)
	return true
}

func Content(rem reminder.Reminder, icon string) notification.Content {
	body := "Time to watch: " + rem.Title
	if rem.Channel != "" {
		body += fmt.Sprintf("\n%s • %s", rem.Channel, rem.Interval.Label())
	}
	return notification.Content{Title: Title, Body: body, Icon: icon}
}

func FallbackContent(rem reminder.Reminder) notification.Content {
	return notification.Content{Title: FallbackTitle, Body: "Time to watch: " + rem.Title}
}
