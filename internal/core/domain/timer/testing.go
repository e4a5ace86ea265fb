package timer

import (
	"context"
	"sync"
	"time"
)

type FakeTimer struct {
	Armed       map[Name]time.Time
	ArmCalls    []Name
	DisarmCalls []Name
	ArmError    error
	DisarmError error
	lock        sync.Mutex
}

func NewFakeTimer() *FakeTimer {
	return &FakeTimer{Armed: make(map[Name]time.Time)}
}

func (t *FakeTimer) Arm(ctx context.Context, name Name, at time.Time) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.ArmCalls = append(t.ArmCalls, name)
	if t.ArmError != nil {
		return t.ArmError
	}
	t.Armed[name] = at
	return nil
}

func (t *FakeTimer) Disarm(ctx context.Context, name Name) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.DisarmCalls = append(t.DisarmCalls, name)
	if t.DisarmError != nil {
		return t.DisarmError
	}
	delete(t.Armed, name)
	return nil
}

func (t *FakeTimer) ArmedAt(name Name) (time.Time, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	at, ok := t.Armed[name]
	return at, ok
}

type FakeRegistry struct {
	Tokens     map[Name]string
	ClaimError error
	lock       sync.Mutex
}

func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{Tokens: make(map[Name]string)}
}

func (r *FakeRegistry) Register(ctx context.Context, name Name, token string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Tokens[name] = token
	return nil
}

func (r *FakeRegistry) Revoke(ctx context.Context, name Name) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.Tokens, name)
	return nil
}

func (r *FakeRegistry) Claim(ctx context.Context, name Name, token string) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.ClaimError != nil {
		return false, r.ClaimError
	}
	if current, ok := r.Tokens[name]; ok && current == token {
		delete(r.Tokens, name)
		return true, nil
	}
	return false, nil
}

type FakeWakeups struct {
	C            chan Wakeup
	Stale        map[string]bool
	ConfirmError error
	Confirmed    []Wakeup
	lock         sync.Mutex
}

func NewFakeWakeups() *FakeWakeups {
	return &FakeWakeups{C: make(chan Wakeup), Stale: make(map[string]bool)}
}

func (w *FakeWakeups) Fired() <-chan Wakeup {
	return w.C
}

func (w *FakeWakeups) Confirm(ctx context.Context, wakeup Wakeup) (bool, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.ConfirmError != nil {
		return false, w.ConfirmError
	}
	if w.Stale[wakeup.Token] {
		return false, nil
	}
	w.Confirmed = append(w.Confirmed, wakeup)
	return true, nil
}
