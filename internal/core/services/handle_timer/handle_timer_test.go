package handletimer

import (
	"context"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	collectgarbage "rewatch/internal/core/services/collect_garbage"
	firereminder "rewatch/internal/core/services/fire_reminder"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubCollect struct {
	Calls int
}

func (s *stubCollect) Run(ctx context.Context, input collectgarbage.Input) (collectgarbage.Result, error) {
	s.Calls++
	return collectgarbage.Result{}, nil
}

type stubFire struct {
	Fired []reminder.ID
}

func (s *stubFire) Run(ctx context.Context, input firereminder.Input) (firereminder.Result, error) {
	s.Fired = append(s.Fired, input.ReminderID)
	return firereminder.Result{}, nil
}

func TestHandleTimerDispatch(t *testing.T) {
	cases := []struct {
		id              string
		name            timer.Name
		expectedCollect int
		expectedFired   []reminder.ID
	}{
		{id: "cleanup", name: timer.Cleanup, expectedCollect: 1},
		{id: "reminder", name: "reminder_lq3k1x2ab", expectedFired: []reminder.ID{"lq3k1x2ab"}},
		{id: "unknown", name: "something_else"},
		{id: "empty id", name: "reminder_"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			collect := &stubCollect{}
			fire := &stubFire{}
			service := New(logging.NewFakeLogger(), collect, fire)

			_, err := service.Run(context.Background(), Input{Name: testcase.name})

			require.Nil(t, err)
			require.Equal(t, testcase.expectedCollect, collect.Calls)
			require.Equal(t, testcase.expectedFired, fire.Fired)
		})
	}
}
