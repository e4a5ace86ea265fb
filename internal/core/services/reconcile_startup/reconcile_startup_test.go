package reconcilestartup

import (
	"context"
	"errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	repository *reminder.FakeRepository
	notifier   *notification.FakeNotifier
	timer      *timer.FakeTimer
	service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.repository = reminder.NewFakeRepository(
		reminder.Reminder{ID: "future", ResourceID: "a", NextReminder: Now.Add(time.Hour)},
		reminder.Reminder{ID: "overdue", ResourceID: "b", NextReminder: Now.Add(-time.Hour)},
	)
	suite.notifier = notification.NewFakeNotifier()
	suite.notifier.Active["reminder_a"] = notification.Content{}
	suite.notifier.Active[reminder.SnoozeConfirmationID] = notification.Content{}
	suite.notifier.Active["other_app"] = notification.Content{}
	suite.timer = timer.NewFakeTimer()
	suite.service = New(
		suite.logger,
		suite.repository,
		suite.notifier,
		suite.timer,
		func() time.Time { return Now },
	)
}

func TestReconcileStartupService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestReconcile() {
	result, err := s.service.Run(context.Background(), Input{})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(2, result.Cleared)
	assert.ElementsMatch([]notification.ID{"reminder_a", reminder.SnoozeConfirmationID}, s.notifier.Cleared)
	_, ok := s.notifier.Active["other_app"]
	assert.True(ok)

	assert.Equal(2, result.Armed)
	at, _ := s.timer.ArmedAt("reminder_future")
	assert.Equal(Now.Add(time.Hour), at)
	at, _ = s.timer.ArmedAt("reminder_overdue")
	assert.Equal(Now, at)
}

func (s *testSuite) TestReconcileWithoutNotifications() {
	s.notifier.IsUnavailable = true

	result, err := s.service.Run(context.Background(), Input{})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(0, result.Cleared)
	assert.Equal(2, result.Armed)
}

func (s *testSuite) TestReconcileListNotificationsError() {
	s.notifier.ListError = errors.New("dbus")

	result, err := s.service.Run(context.Background(), Input{})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(0, result.Cleared)
	assert.Equal(2, result.Armed)
}

func (s *testSuite) TestReconcileStoreError() {
	s.repository.ListError = errors.New("io")

	_, err := s.service.Run(context.Background(), Input{})

	assert := s.Require()
	assert.ErrorIs(err, s.repository.ListError)
	assert.Empty(s.timer.ArmCalls)
}
