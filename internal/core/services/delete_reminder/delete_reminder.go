package deletereminder

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/core/services"
)

type Input struct {
	ReminderID reminder.ID
}

type Result struct{}

type service struct {
	log        logging.Logger
	repository reminder.Repository
	timer      timer.Timer
}

func New(
	log logging.Logger,
	repository reminder.Repository,
	timer timer.Timer,
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
	return &service{
		log:        log,
		repository: repository,
		timer:      timer,
	}
}

// Run removes the reminder and its timer. Deleting an unknown reminder
// succeeds.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.repository.RemoveByID(ctx, input.ReminderID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := s.timer.Disarm(ctx, input.ReminderID.TimerName()); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder has been successfully deleted.",
		logging.Entry("reminderID", input.ReminderID),
	)
	return result, nil
}
