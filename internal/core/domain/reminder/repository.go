package reminder

import (
	"context"
	"time"
)

// Repository is the durable reminder collection. Every mutation is a
// read-modify-write of the whole collection.
type Repository interface {
	List(ctx context.Context) ([]Reminder, error)
	// Append fails with ErrReminderAlreadyExists if the ID is taken.
	Append(ctx context.Context, rem Reminder) error
	ReplaceAll(ctx context.Context, reminders []Reminder) error
	// RemoveByID is a no-op for unknown IDs.
	RemoveByID(ctx context.Context, id ID) error
	Update(ctx context.Context, id ID, mutate func(*Reminder)) (Reminder, error)
	// Retain drops every reminder failing keep in one rewrite and returns the
	// dropped ones. Nothing is written when nothing is dropped.
	Retain(ctx context.Context, keep func(Reminder) bool) ([]Reminder, error)
}

type IDGenerator interface {
	GenerateReminderID(now time.Time) ID
}
