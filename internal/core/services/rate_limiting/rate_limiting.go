package ratelimiting

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	ratelimiter "rewatch/internal/core/domain/rate_limiter"
	"rewatch/internal/core/services"
)

// KeyPrefix namespaces limiter keys of all operations.
const KeyPrefix = "rewatch:rl:"

type service[T any, S any] struct {
	log         logging.Logger
	rateLimiter ratelimiter.RateLimiter
	key         string
	limit       ratelimiter.Limit
	inner       services.Service[T, S]
}

// New caps the calls of inner to limit, counted under one key for the
// whole operation. The extension is the only caller, so there is no
// per-client key.
func New[T any, S any](
	log logging.Logger,
	rateLimiter ratelimiter.RateLimiter,
	operation string,
	limit ratelimiter.Limit,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if rateLimiter == nil {
		panic(e.NewNilArgumentError("rateLimiter"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	if operation == "" {
		panic("operation must not be empty")
	}
	return &service[T, S]{
		log:         log,
		rateLimiter: rateLimiter,
		key:         KeyPrefix + operation,
		limit:       limit,
		inner:       inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	if !s.rateLimiter.CheckLimit(ctx, s.key, s.limit).IsAllowed {
		s.log.Warning(
			ctx,
			"Rate limit exceeded.",
			logging.Entry("key", s.key),
			logging.Entry("limit", s.limit.Value),
		)
		return result, ratelimiter.ErrRateLimitExceeded
	}
	return s.inner.Run(ctx, input)
}
