package takevideo

import (
	"context"
	"errors"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/handoff"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/services"
)

type Input struct{}

type Result struct {
	Data handoff.VideoData
}

type service struct {
	log   logging.Logger
	store handoff.Store
}

func New(log logging.Logger, store handoff.Store) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	return &service{log: log, store: store}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	data, err := s.store.Take(ctx)
	if err != nil {
		if !errors.Is(err, handoff.ErrNoVideoData) {
			logging.Error(ctx, s.log, err)
		}
		return result, err
	}
	result.Data = data
	return result, nil
}
