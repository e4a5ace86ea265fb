package reminder

import (
	"fmt"
	c "rewatch/internal/core/domain/common"
	e "rewatch/internal/core/domain/errors"
	"time"
)

const (
	UnknownVideoTitle   = "Unknown Video"
	UnknownVideoChannel = "Unknown Channel"
)

type ID string

// Video describes the watchable item a reminder points at, as supplied by the
// page detector.
type Video struct {
	ResourceID string
	URL        string
	Title      string
	Channel    string
	Thumbnail  string
}

// WithFallbacks fills display fields the page detector could not extract.
func (v Video) WithFallbacks() Video {
	if v.Title == "" {
		v.Title = UnknownVideoTitle
	}
	if v.Channel == "" {
		v.Channel = UnknownVideoChannel
	}
	if v.Thumbnail == "" && v.ResourceID != "" {
		v.Thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", v.ResourceID)
	}
	return v
}

type Reminder struct {
	ID            ID
	ResourceID    string
	URL           string
	Title         string
	Channel       string
	Thumbnail     string
	Interval      Interval
	Note          c.Optional[string]
	CreatedAt     time.Time
	NextReminder  time.Time
	LastTriggered c.Optional[time.Time]
}

func New(id ID, video Video, interval Interval, note c.Optional[string], now time.Time) Reminder {
	return Reminder{
		ID:           id,
		ResourceID:   video.ResourceID,
		URL:          video.URL,
		Title:        video.Title,
		Channel:      video.Channel,
		Thumbnail:    video.Thumbnail,
		Interval:     interval,
		Note:         note,
		CreatedAt:    now,
		NextReminder: interval.NextFrom(now),
	}
}

func (r *Reminder) Validate() error {
	if r.ID == "" {
		return e.NewInvalidStateError("reminder ID must not be empty")
	}
	if r.NextReminder.Before(r.CreatedAt) {
		return e.NewInvalidStateErrorf("reminder %s: next reminder is before creation", r.ID)
	}
	if r.LastTriggered.IsPresent && r.LastTriggered.Value.Before(r.CreatedAt) {
		return e.NewInvalidStateErrorf("reminder %s: last triggered is before creation", r.ID)
	}
	return nil
}

// Triggered moves the schedule forward after a fire at t. The next fire
// always lands after the current one, even for a wake-up that came early.
func (r *Reminder) Triggered(t time.Time) {
	next := r.Interval.NextFrom(t)
	if !next.After(r.NextReminder) {
		next = r.Interval.NextFrom(r.NextReminder)
	}
	r.NextReminder = next
	r.LastTriggered = c.NewOptional(t, true)
}

// Snoozed postpones the next fire to at without touching the interval.
func (r *Reminder) Snoozed(at time.Time) {
	r.NextReminder = at
}

// IsExpired reports whether garbage collection should drop the reminder.
func (r *Reminder) IsExpired(now time.Time, maxAge time.Duration) bool {
	return !r.CreatedAt.After(now.Add(-maxAge)) || r.ResourceID == ""
}
