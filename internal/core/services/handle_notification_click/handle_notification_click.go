package handlenotificationclick

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/services"
)

type Input struct {
	NotificationID notification.ID
}

type Result struct {
	Opened bool
}

type service struct {
	log        logging.Logger
	repository reminder.Repository
	notifier   notification.Notifier
	tabOpener  notification.TabOpener
}

func New(
	log logging.Logger,
	repository reminder.Repository,
	notifier notification.Notifier,
	tabOpener notification.TabOpener,
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
	if tabOpener == nil {
		panic(e.NewNilArgumentError("tabOpener"))
	}
	return &service{
		log:        log,
		repository: repository,
		notifier:   notifier,
		tabOpener:  tabOpener,
	}
}

// Run opens the video of a clicked reminder alert and dismisses the alert.
// The reminder itself is not changed.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	reminderID, ok := reminder.IDFromNotificationID(input.NotificationID)
	if !ok {
		s.log.Debug(ctx, "Click on a foreign notification, skip.", logging.Entry("notificationID", input.NotificationID))
		return result, nil
	}

	reminders, err := s.repository.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	rem, ok := reminder.Collection(reminders).Find(reminderID)
	if !ok {
		s.log.Info(ctx, "Clicked reminder not found, skip.", logging.Entry("reminderID", reminderID))
		return result, nil
	}

	if err := s.tabOpener.OpenTab(ctx, rem.URL); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID), logging.Entry("url", rem.URL))
		return result, err
	}
	result.Opened = true

	if s.notifier.Available() {
		if err := s.notifier.Clear(ctx, input.NotificationID); err != nil {
			s.log.Warning(
				ctx,
				"Could not clear clicked notification.",
				logging.Entry("notificationID", input.NotificationID),
				logging.Entry("err", err),
			)
		}
	}

	s.log.Info(ctx, "Reminder video opened.", logging.Entry("reminderID", rem.ID))
	return result, nil
}
