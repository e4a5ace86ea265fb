package handletimer

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/core/services"
	collectgarbage "rewatch/internal/core/services/collect_garbage"
	firereminder "rewatch/internal/core/services/fire_reminder"
)

type Input struct {
	Name timer.Name
}

type Result struct{}

type service struct {
	log            logging.Logger
	collectGarbage services.Service[collectgarbage.Input, collectgarbage.Result]
	fireReminder   services.Service[firereminder.Input, firereminder.Result]
}

// New dispatches a fired timer to garbage collection or to the reminder it
// belongs to.
func New(
	log logging.Logger,
	collectGarbage services.Service[collectgarbage.Input, collectgarbage.Result],
	fireReminder services.Service[firereminder.Input, firereminder.Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if collectGarbage == nil {
		panic(e.NewNilArgumentError("collectGarbage"))
	}
	if fireReminder == nil {
		panic(e.NewNilArgumentError("fireReminder"))
	}
	return &service{
		log:            log,
		collectGarbage: collectGarbage,
		fireReminder:   fireReminder,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Name == timer.Cleanup {
		_, err := s.collectGarbage.Run(ctx, collectgarbage.Input{})
		return result, err
	}

	reminderID, ok := reminder.IDFromTimerName(input.Name)
	if !ok {
		s.log.Warning(ctx, "Unknown timer fired, skip.", logging.Entry("name", input.Name))
		return result, nil
	}
	_, err = s.fireReminder.Run(ctx, firereminder.Input{ReminderID: reminderID})
	return result, err
}
