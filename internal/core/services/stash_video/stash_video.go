package stashvideo

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/handoff"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/services"
	"time"
)

type Input struct {
	Data handoff.VideoData
}

type Result struct{}

type service struct {
	log   logging.Logger
	store handoff.Store
	ttl   time.Duration
}

// New builds the page-to-popup handoff. A stashed record replaces the
// previous one and expires after ttl.
func New(log logging.Logger, store handoff.Store, ttl time.Duration) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	return &service{log: log, store: store, ttl: ttl}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := s.store.Put(ctx, input.Data, s.ttl); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	s.log.Debug(ctx, "Video data stashed.", logging.Entry("resourceID", input.Data.ResourceID))
	return result, nil
}
