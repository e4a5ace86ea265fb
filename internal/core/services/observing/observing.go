package observing

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/metrics"
	"rewatch/internal/core/services"
	"time"
)

type serviceWithMetrics[T any, S any] struct {
	recorder  metrics.Recorder
	operation string
	inner     services.Service[T, S]
	now       func() time.Time
}

// WithMetrics records the outcome and latency of every run of inner under
// the operation name.
func WithMetrics[T any, S any](
	recorder metrics.Recorder,
	operation string,
	inner services.Service[T, S],
	now func() time.Time,
) services.Service[T, S] {
	if recorder == nil {
		panic(e.NewNilArgumentError("recorder"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &serviceWithMetrics[T, S]{
		recorder:  recorder,
		operation: operation,
		inner:     inner,
		now:       now,
	}
}

func (s *serviceWithMetrics[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	started := s.now()
	result, err = s.inner.Run(ctx, input)
	s.recorder.ObserveOperation(s.operation, metrics.OutcomeOf(err), s.now().Sub(started))
	return result, err
}
