package desktopnotifier

import (
	"context"
	"errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	reconcilestartup "rewatch/internal/core/services/reconcile_startup"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/suite"
)

type recordedCall struct {
	method string
	args   []interface{}
}

type fakeObject struct {
	Calls    []recordedCall
	NextID   uint32
	ShowErr  error
	ClearErr error
}

func (o *fakeObject) CallWithContext(
	ctx context.Context,
	method string,
	flags dbus.Flags,
	args ...interface{},
) *dbus.Call {
	o.Calls = append(o.Calls, recordedCall{method: method, args: args})
	switch method {
	case notifyCall:
		if o.ShowErr != nil {
			return &dbus.Call{Err: o.ShowErr}
		}
		o.NextID++
		return &dbus.Call{Body: []interface{}{o.NextID}}
	default:
		return &dbus.Call{Err: o.ClearErr}
	}
}

type fakeStore struct {
	ids     map[notification.ID]uint32
	SaveErr error
}

func (f *fakeStore) Load(ctx context.Context) (map[notification.ID]uint32, error) {
	ids := make(map[notification.ID]uint32, len(f.ids))
	for id, serverID := range f.ids {
		ids[id] = serverID
	}
	return ids, nil
}

func (f *fakeStore) Save(ctx context.Context, ids map[notification.ID]uint32) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.ids = ids
	return nil
}

type testSuite struct {
	suite.Suite
	logger   *logging.FakeLogger
	object   *fakeObject
	store    *fakeStore
	notifier *DBus
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.object = &fakeObject{}
	suite.store = &fakeStore{}
	suite.notifier = newDBus(suite.logger, "rewatch", suite.object, suite.store)
}

// restart builds a second notifier against the same server and store.
func (s *testSuite) restart() *DBus {
	next := newDBus(logging.NewFakeLogger(), "rewatch", s.object, s.store)
	s.Require().NoError(next.restore(context.Background()))
	return next
}

func TestDBusNotifier(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) show(id notification.ID) {
	_, err := s.notifier.Show(context.Background(), id, notification.Content{Title: "t", Body: "b", Icon: "i"})
	s.Require().NoError(err)
}

func (s *testSuite) TestShowCallsNotify() {
	s.show("reminder_a")

	assert := s.Require()
	assert.Len(s.object.Calls, 1)
	call := s.object.Calls[0]
	assert.Equal(notifyCall, call.method)
	assert.Equal("rewatch", call.args[0])
	assert.Equal(uint32(0), call.args[1])
	assert.Equal("i", call.args[2])
	assert.Equal("t", call.args[3])
	assert.Equal("b", call.args[4])

	active, err := s.notifier.ListActive(context.Background())
	assert.NoError(err)
	assert.Equal([]notification.ID{"reminder_a"}, active)
}

func (s *testSuite) TestShowSameIDReplaces() {
	s.show("reminder_a")
	s.show("reminder_a")

	assert := s.Require()
	assert.Equal(uint32(1), s.object.Calls[1].args[1])
	active, _ := s.notifier.ListActive(context.Background())
	assert.Len(active, 1)
}

func (s *testSuite) TestShowError() {
	s.object.ShowErr = errors.New("no server")

	_, err := s.notifier.Show(context.Background(), "reminder_a", notification.Content{})

	assert := s.Require()
	assert.ErrorIs(err, s.object.ShowErr)
	active, _ := s.notifier.ListActive(context.Background())
	assert.Empty(active)
}

func (s *testSuite) TestClear() {
	s.show("reminder_a")

	assert := s.Require()
	assert.NoError(s.notifier.Clear(context.Background(), "reminder_a"))
	assert.Equal(closeCall, s.object.Calls[1].method)
	assert.Equal(uint32(1), s.object.Calls[1].args[0])

	assert.NoError(s.notifier.Clear(context.Background(), "reminder_a"))
	assert.Len(s.object.Calls, 2)
}

func (s *testSuite) TestDefaultActionIsClick() {
	s.show("reminder_a")

	s.notifier.handleSignal(&dbus.Signal{Name: actionEvent, Body: []interface{}{uint32(1), "default"}})
	s.notifier.handleSignal(&dbus.Signal{Name: actionEvent, Body: []interface{}{uint32(1), "other"}})
	s.notifier.handleSignal(&dbus.Signal{Name: actionEvent, Body: []interface{}{uint32(99), "default"}})

	assert := s.Require()
	assert.Len(s.notifier.clicks, 1)
	assert.Equal(notification.ID("reminder_a"), <-s.notifier.Clicks())
}

func (s *testSuite) TestClosedSignalForgets() {
	s.show("reminder_a")
	s.show("snooze_confirmation")

	s.notifier.handleSignal(&dbus.Signal{Name: closedEvent, Body: []interface{}{uint32(1), uint32(2)}})

	active, _ := s.notifier.ListActive(context.Background())
	s.Require().Equal([]notification.ID{"snooze_confirmation"}, active)
}

func (s *testSuite) TestShowAndClearArePersisted() {
	assert := s.Require()

	s.show("reminder_a")
	assert.Equal(map[notification.ID]uint32{"reminder_a": 1}, s.store.ids)

	assert.NoError(s.notifier.Clear(context.Background(), "reminder_a"))
	assert.Empty(s.store.ids)
}

func (s *testSuite) TestClosedSignalIsPersisted() {
	s.show("reminder_a")

	s.notifier.handleSignal(&dbus.Signal{Name: closedEvent, Body: []interface{}{uint32(1), uint32(2)}})

	s.Require().Empty(s.store.ids)
}

func (s *testSuite) TestRestartClearsAlertsOfPreviousRun() {
	assert := s.Require()
	ctx := context.Background()
	s.show("reminder_abc")

	next := s.restart()

	active, err := next.ListActive(ctx)
	assert.NoError(err)
	assert.Equal([]notification.ID{"reminder_abc"}, active)

	assert.NoError(next.Clear(ctx, "reminder_abc"))
	last := s.object.Calls[len(s.object.Calls)-1]
	assert.Equal(closeCall, last.method)
	assert.Equal(uint32(1), last.args[0])
	assert.Empty(s.store.ids)
}

func (s *testSuite) TestStartupReconciliationClosesAlertsOfPreviousRun() {
	assert := s.Require()
	s.show("reminder_abc")
	s.show("snooze_confirmation")
	next := s.restart()

	reconcile := reconcilestartup.New(
		logging.NewFakeLogger(),
		reminder.NewFakeRepository(),
		next,
		timer.NewFakeTimer(),
		time.Now,
	)
	result, err := reconcile.Run(context.Background(), reconcilestartup.Input{})

	assert.NoError(err)
	assert.Equal(2, result.Cleared)
	closed := 0
	for _, call := range s.object.Calls {
		if call.method == closeCall {
			closed++
		}
	}
	assert.Equal(2, closed)
}

func (s *testSuite) TestRestartedNotifierReplacesAndRoutesClicks() {
	assert := s.Require()
	s.show("reminder_abc")

	next := s.restart()
	next.handleSignal(&dbus.Signal{Name: actionEvent, Body: []interface{}{uint32(1), "default"}})
	_, err := next.Show(context.Background(), "reminder_abc", notification.Content{})

	assert.NoError(err)
	assert.Equal(notification.ID("reminder_abc"), <-next.Clicks())
	last := s.object.Calls[len(s.object.Calls)-1]
	assert.Equal(notifyCall, last.method)
	assert.Equal(uint32(1), last.args[1])
}

func (s *testSuite) TestClearOfRestoredAlertAlreadyGone() {
	s.show("reminder_abc")
	next := s.restart()
	s.object.ClearErr = errors.New("no such notification")

	err := next.Clear(context.Background(), "reminder_abc")

	s.Require().NoError(err)
}

func (s *testSuite) TestClearErrorOfOwnAlert() {
	s.show("reminder_abc")
	s.object.ClearErr = errors.New("no server")

	err := s.notifier.Clear(context.Background(), "reminder_abc")

	s.Require().ErrorIs(err, s.object.ClearErr)
}

func (s *testSuite) TestSaveFailureDoesNotFailShow() {
	s.store.SaveErr = errors.New("disk full")

	s.show("reminder_a")

	assert := s.Require()
	assert.Equal(1, s.logger.Count(logging.WARNING))
	active, _ := s.notifier.ListActive(context.Background())
	assert.Len(active, 1)
}

func TestUnavailable(t *testing.T) {
	var n notification.Notifier = Unavailable{}

	_, err := n.Show(context.Background(), "reminder_a", notification.Content{})

	if n.Available() || !errors.Is(err, notification.ErrServiceUnavailable) {
		t.Fatal("unavailable notifier must report the service as unavailable")
	}
}
