package dbreminder

import (
	"context"
	"fmt"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/db/document"
)

// Repository stores all reminders as a single JSON array document.
type Repository struct {
	document document.Document
}

func New(doc document.Document) *Repository {
	if doc == nil {
		panic(e.NewNilArgumentError("document"))
	}
	return &Repository{document: doc}
}

func (r *Repository) List(ctx context.Context) ([]reminder.Reminder, error) {
	data, err := r.document.Load(ctx)
	if err != nil {
		return nil, err
	}
	reminders, err := decodeReminders(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode reminders: %w", err)
	}
	return reminders, nil
}

func (r *Repository) Append(ctx context.Context, rem reminder.Reminder) error {
	return r.rewrite(ctx, func(current reminder.Collection) (reminder.Collection, bool, error) {
		next, err := current.Append(rem)
		return next, err == nil, err
	})
}

func (r *Repository) ReplaceAll(ctx context.Context, reminders []reminder.Reminder) error {
	return r.rewrite(ctx, func(current reminder.Collection) (reminder.Collection, bool, error) {
		return reminders, true, nil
	})
}

func (r *Repository) RemoveByID(ctx context.Context, id reminder.ID) error {
	return r.rewrite(ctx, func(current reminder.Collection) (reminder.Collection, bool, error) {
		next, removed := current.Remove(id)
		return next, removed, nil
	})
}

func (r *Repository) Update(
	ctx context.Context,
	id reminder.ID,
	mutate func(*reminder.Reminder),
) (updated reminder.Reminder, err error) {
	err = r.rewrite(ctx, func(current reminder.Collection) (reminder.Collection, bool, error) {
		next, rem, err := current.Update(id, mutate)
		if err != nil {
			return nil, false, err
		}
		updated = rem
		return next, true, nil
	})
	return updated, err
}

func (r *Repository) Retain(
	ctx context.Context,
	keep func(reminder.Reminder) bool,
) (dropped []reminder.Reminder, err error) {
	err = r.rewrite(ctx, func(current reminder.Collection) (reminder.Collection, bool, error) {
		next, removed := current.Retain(keep)
		dropped = removed
		return next, len(removed) > 0, nil
	})
	if err != nil {
		return nil, err
	}
	return dropped, nil
}

func (r *Repository) rewrite(
	ctx context.Context,
	fn func(current reminder.Collection) (next reminder.Collection, write bool, err error),
) error {
	return r.document.Rewrite(ctx, func(data []byte) ([]byte, error) {
		current, err := decodeReminders(data)
		if err != nil {
			return nil, fmt.Errorf("could not decode reminders: %w", err)
		}
		next, write, err := fn(current)
		if err != nil || !write {
			return nil, err
		}
		return encodeReminders(next)
	})
}
