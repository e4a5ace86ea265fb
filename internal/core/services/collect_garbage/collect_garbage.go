package collectgarbage

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/metrics"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/services"
	"time"
)

type Input struct{}

type Result struct {
	Dropped []reminder.Reminder
}

type service struct {
	log        logging.Logger
	repository reminder.Repository
	recorder   metrics.Recorder
	maxAge     time.Duration
	now        func() time.Time
}

// New builds the periodic cleanup. Reminders older than maxAge or without a
// video reference are dropped. Their timers are left alone, a later fire of
// such a timer finds nothing and is ignored.
func New(
	log logging.Logger,
	repository reminder.Repository,
	recorder metrics.Recorder,
	maxAge time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if recorder == nil {
		panic(e.NewNilArgumentError("recorder"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		repository: repository,
		recorder:   recorder,
		maxAge:     maxAge,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	dropped, err := s.repository.Retain(ctx, func(rem reminder.Reminder) bool {
		return !rem.IsExpired(now, s.maxAge)
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	s.recorder.RemindersCollected(len(dropped))

	if len(dropped) > 0 {
		ids := make([]reminder.ID, 0, len(dropped))
		for _, rem := range dropped {
			ids = append(ids, rem.ID)
		}
		s.log.Info(
			ctx,
			"Expired reminders removed.",
			logging.Entry("count", len(dropped)),
			logging.Entry("reminderIDs", ids),
		)
	}
	result.Dropped = dropped
	return result, nil
}
