package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type FakeRepository struct {
	Reminders       Collection
	ListError       error
	AppendError     error
	ReplaceAllError error
	RemoveError     error
	UpdateError     error
	RetainError     error
	Writes          int
	lock            sync.Mutex
}

func NewFakeRepository(reminders ...Reminder) *FakeRepository {
	return &FakeRepository{Reminders: append(Collection{}, reminders...)}
}

func (r *FakeRepository) List(ctx context.Context) ([]Reminder, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.ListError != nil {
		return nil, r.ListError
	}
	return append([]Reminder{}, r.Reminders...), nil
}

func (r *FakeRepository) Append(ctx context.Context, rem Reminder) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.AppendError != nil {
		return r.AppendError
	}
	next, err := r.Reminders.Append(rem)
	if err != nil {
		return err
	}
	r.Reminders = next
	r.Writes++
	return nil
}

func (r *FakeRepository) ReplaceAll(ctx context.Context, reminders []Reminder) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.ReplaceAllError != nil {
		return r.ReplaceAllError
	}
	r.Reminders = append(Collection{}, reminders...)
	r.Writes++
	return nil
}

func (r *FakeRepository) RemoveByID(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.RemoveError != nil {
		return r.RemoveError
	}
	next, removed := r.Reminders.Remove(id)
	if removed {
		r.Reminders = next
		r.Writes++
	}
	return nil
}

func (r *FakeRepository) Update(ctx context.Context, id ID, mutate func(*Reminder)) (Reminder, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.UpdateError != nil {
		return Reminder{}, r.UpdateError
	}
	next, rem, err := r.Reminders.Update(id, mutate)
	if err != nil {
		return Reminder{}, err
	}
	r.Reminders = next
	r.Writes++
	return rem, nil
}

func (r *FakeRepository) Retain(ctx context.Context, keep func(Reminder) bool) ([]Reminder, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.RetainError != nil {
		return nil, r.RetainError
	}
	kept, dropped := r.Reminders.Retain(keep)
	if len(dropped) > 0 {
		r.Reminders = kept
		r.Writes++
	}
	return dropped, nil
}

func (r *FakeRepository) Get(id ID) (Reminder, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Reminders.Find(id)
}

type FakeIDGenerator struct {
	counter int
}

func (g *FakeIDGenerator) GenerateReminderID(now time.Time) ID {
	g.counter++
	return ID(fmt.Sprintf("id%d", g.counter))
}
