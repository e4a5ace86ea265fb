package ratelimiting

import (
	"context"
	"rewatch/internal/core/domain/logging"
	ratelimiter "rewatch/internal/core/domain/rate_limiter"
	"testing"

	"github.com/stretchr/testify/suite"
)

type input struct {
	Value string
}

type result struct {
	Value string
}

type stubService struct {
	calls int
}

func (s *stubService) Run(ctx context.Context, input input) (result, error) {
	s.calls++
	return result{Value: "done"}, nil
}

type testSuite struct {
	suite.Suite
	logger      *logging.FakeLogger
	rateLimiter *ratelimiter.FakeRateLimiter
	inner       *stubService
}

func (s *testSuite) SetupTest() {
	s.logger = logging.NewFakeLogger()
	s.rateLimiter = ratelimiter.NewFakeRateLimiter(true)
	s.inner = &stubService{}
}

func TestRateLimitingService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) service(operation string) func(context.Context, input) (result, error) {
	service := New[input, result](
		s.logger,
		s.rateLimiter,
		operation,
		ratelimiter.Limit{Value: 10, Interval: ratelimiter.Minute},
		s.inner,
	)
	return service.Run
}

func (s *testSuite) TestAllowedRunsInner() {
	assert := s.Require()

	res, err := s.service("stash_video")(context.Background(), input{Value: "a"})

	assert.Nil(err)
	assert.Equal("done", res.Value)
	assert.Equal(1, s.inner.calls)
	assert.Equal([]string{"rewatch:rl:stash_video"}, s.rateLimiter.Keys)
}

func (s *testSuite) TestLimitedSkipsInner() {
	assert := s.Require()
	s.rateLimiter.IsAllowed = false

	res, err := s.service("create_reminder")(context.Background(), input{Value: "a"})

	assert.ErrorIs(err, ratelimiter.ErrRateLimitExceeded)
	assert.Equal(result{}, res)
	assert.Equal(0, s.inner.calls)
	assert.Equal(1, s.logger.Count(logging.WARNING))
	assert.Equal([]string{"rewatch:rl:create_reminder"}, s.rateLimiter.Keys)
}

func (s *testSuite) TestOperationsAreCountedSeparately() {
	assert := s.Require()

	s.service("create_reminder")(context.Background(), input{Value: "a"})
	s.service("create_reminder")(context.Background(), input{Value: "b"})
	s.service("stash_video")(context.Background(), input{Value: "a"})

	assert.Equal(
		[]string{"rewatch:rl:create_reminder", "rewatch:rl:create_reminder", "rewatch:rl:stash_video"},
		s.rateLimiter.Keys,
	)
	assert.Equal(3, s.inner.calls)
}
