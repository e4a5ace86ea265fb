package collectgarbage

import (
	"context"
	"errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/metrics"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const MaxAge = 180 * 24 * time.Hour

var Now = time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	repository *reminder.FakeRepository
	recorder   *metrics.FakeRecorder
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.repository = reminder.NewFakeRepository()
	suite.recorder = metrics.NewFakeRecorder()
	suite.service = New(
		suite.logger,
		suite.repository,
		suite.recorder,
		MaxAge,
		func() time.Time { return Now },
	)
}

func TestCollectGarbageService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCollect() {
	cases := []struct {
		id             string
		reminders      []reminder.Reminder
		expectedKept   []reminder.ID
		expectedWrites int
	}{
		{
			id: "drops old and empty video",
			reminders: []reminder.Reminder{
				{ID: "fresh", ResourceID: "a", CreatedAt: Now.Add(-time.Hour)},
				{ID: "old", ResourceID: "b", CreatedAt: Now.Add(-MaxAge - time.Hour)},
				{ID: "novideo", CreatedAt: Now.Add(-time.Hour)},
				{ID: "edge", ResourceID: "c", CreatedAt: Now.Add(-MaxAge)},
			},
			expectedKept:   []reminder.ID{"fresh"},
			expectedWrites: 1,
		},
		{
			id: "nothing to drop",
			reminders: []reminder.Reminder{
				{ID: "a", ResourceID: "a", CreatedAt: Now},
				{ID: "b", ResourceID: "b", CreatedAt: Now.Add(-MaxAge + time.Millisecond)},
			},
			expectedKept:   []reminder.ID{"a", "b"},
			expectedWrites: 0,
		},
		{
			id:             "empty store",
			expectedKept:   []reminder.ID{},
			expectedWrites: 0,
		},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			s.SetupTest()
			s.repository.Reminders = append(reminder.Collection{}, testcase.reminders...)

			result, err := s.service.Run(context.Background(), Input{})

			assert := s.Require()
			assert.Nil(err)
			kept := make([]reminder.ID, 0)
			for _, rem := range s.repository.Reminders {
				kept = append(kept, rem.ID)
			}
			assert.Equal(testcase.expectedKept, kept)
			assert.Equal(testcase.expectedWrites, s.repository.Writes)
			assert.Equal(len(testcase.reminders)-len(testcase.expectedKept), len(result.Dropped))
			assert.Equal(len(result.Dropped), s.recorder.Collected)
		})
	}
}

func (s *testSuite) TestCollectError() {
	s.repository.RetainError = errors.New("io")

	_, err := s.service.Run(context.Background(), Input{})

	assert := s.Require()
	assert.ErrorIs(err, s.repository.RetainError)
	assert.Equal(1, s.logger.Count(logging.ERROR))
}
