package metrics

import (
	"sync"
	"time"
)

type Observation struct {
	Operation string
	Outcome   Outcome
}

type FakeRecorder struct {
	Observations []Observation
	Fired        int
	Displayed    int
	Collected    int
	lock         sync.Mutex
}

func NewFakeRecorder() *FakeRecorder {
	return &FakeRecorder{}
}

func (r *FakeRecorder) ObserveOperation(operation string, outcome Outcome, elapsed time.Duration) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Observations = append(r.Observations, Observation{Operation: operation, Outcome: outcome})
}

func (r *FakeRecorder) ReminderFired(displayed bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Fired++
	if displayed {
		r.Displayed++
	}
}

func (r *FakeRecorder) RemindersCollected(count int) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Collected += count
}
