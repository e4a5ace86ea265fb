package listreminders

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/services"
)

type Input struct{}

type Result struct {
	Reminders []reminder.Reminder
}

type service struct {
	log        logging.Logger
	repository reminder.Repository
}

func New(log logging.Logger, repository reminder.Repository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	return &service{log: log, repository: repository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	reminders, err := s.repository.List(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	result.Reminders = reminders
	return result, nil
}
