package createreminder

import (
	"context"
	c "rewatch/internal/core/domain/common"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/core/services"
	"time"
)

type Input struct {
	Video    reminder.Video
	Interval reminder.Interval
	Note     c.Optional[string]
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log         logging.Logger
	repository  reminder.Repository
	idGenerator reminder.IDGenerator
	timer       timer.Timer
	now         func() time.Time
}

func New(
	log logging.Logger,
	repository reminder.Repository,
	idGenerator reminder.IDGenerator,
	timer timer.Timer,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if idGenerator == nil {
		panic(e.NewNilArgumentError("idGenerator"))
	}
	if timer == nil {
		panic(e.NewNilArgumentError("timer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:         log,
		repository:  repository,
		idGenerator: idGenerator,
		timer:       timer,
		now:         now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	interval := input.Interval
	if interval == "" {
		interval = reminder.DefaultInterval
	}
	if !interval.IsKnown() {
		s.log.Warning(
			ctx,
			"Unknown interval, daily duration will be used.",
			logging.Entry("interval", interval),
		)
	}

	now := s.now()
	rem := reminder.New(
		s.idGenerator.GenerateReminderID(now),
		input.Video.WithFallbacks(),
		interval,
		input.Note,
		now,
	)
	if err := rem.Validate(); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminder", rem))
		return result, err
	}

	if err := s.repository.Append(ctx, rem); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input), logging.Entry("reminderID", rem.ID))
		return result, err
	}

	if err := s.timer.Arm(ctx, rem.ID.TimerName(), rem.NextReminder); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder successfully created.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("nextReminder", rem.NextReminder),
	)
	result.Reminder = rem
	return result, nil
}
