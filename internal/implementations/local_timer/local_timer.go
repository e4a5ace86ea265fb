package localtimer

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/timer"
	"strconv"
	"sync"
	"time"
)

type entry struct {
	timer *time.Timer
	token string
}

// Timer keeps wake-ups in process. An entry stays until its wake-up is
// confirmed, so a queued wake-up of a disarmed or re-armed timer is stale.
type Timer struct {
	log        logging.Logger
	now        func() time.Time
	fired      chan timer.Wakeup
	done       chan struct{}
	entries    map[timer.Name]entry
	generation uint64
	lock       sync.Mutex
	stopOnce   sync.Once
}

func New(log logging.Logger, now func() time.Time) *Timer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Timer{
		log:     log,
		now:     now,
		fired:   make(chan timer.Wakeup, 64),
		done:    make(chan struct{}),
		entries: make(map[timer.Name]entry),
	}
}

func (t *Timer) Fired() <-chan timer.Wakeup {
	return t.fired
}

func (t *Timer) Arm(ctx context.Context, name timer.Name, at time.Time) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if existing, ok := t.entries[name]; ok {
		existing.timer.Stop()
	}
	t.generation++
	wakeup := timer.Wakeup{Name: name, Token: strconv.FormatUint(t.generation, 10)}
	delay := at.Sub(t.now())
	if delay < 0 {
		delay = 0
	}
	t.entries[name] = entry{
		timer: time.AfterFunc(delay, func() { t.fire(wakeup) }),
		token: wakeup.Token,
	}
	t.log.Debug(ctx, "Timer armed.", logging.Entry("name", name), logging.Entry("at", at))
	return nil
}

func (t *Timer) Disarm(ctx context.Context, name timer.Name) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if existing, ok := t.entries[name]; ok {
		existing.timer.Stop()
		delete(t.entries, name)
	}
	return nil
}

// Stop cancels every pending wake-up.
func (t *Timer) Stop() {
	t.stopOnce.Do(func() {
		t.lock.Lock()
		defer t.lock.Unlock()
		for name, existing := range t.entries {
			existing.timer.Stop()
			delete(t.entries, name)
		}
		close(t.done)
	})
}

// Confirm accepts a wake-up of the current arming once and forgets the
// timer.
func (t *Timer) Confirm(ctx context.Context, wakeup timer.Wakeup) (bool, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	existing, ok := t.entries[wakeup.Name]
	if !ok || existing.token != wakeup.Token {
		return false, nil
	}
	delete(t.entries, wakeup.Name)
	return true, nil
}

func (t *Timer) fire(wakeup timer.Wakeup) {
	t.lock.Lock()
	existing, ok := t.entries[wakeup.Name]
	t.lock.Unlock()
	if !ok || existing.token != wakeup.Token {
		// replaced or disarmed after the runtime timer already expired
		return
	}

	select {
	case t.fired <- wakeup:
	case <-t.done:
	}
}
