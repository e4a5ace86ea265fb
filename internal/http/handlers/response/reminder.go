package response

import (
	"rewatch/internal/core/domain/reminder"
	"time"

	"github.com/golang-module/carbon/v2"
)

type Reminder struct {
	ID            string     `json:"id"`
	ResourceID    string     `json:"resource_id"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Channel       string     `json:"channel"`
	Thumbnail     string     `json:"thumbnail"`
	Interval      string     `json:"interval"`
	IntervalLabel string     `json:"interval_label"`
	Note          *string    `json:"note"`
	CreatedAt     time.Time  `json:"created_at"`
	NextReminder  time.Time  `json:"next_reminder"`
	NextIn        string     `json:"next_in"`
	LastTriggered *time.Time `json:"last_triggered"`
}

// FromDomainType fills r from dr. NextIn is relative to now.
func (r *Reminder) FromDomainType(dr reminder.Reminder, now time.Time) {
	r.ID = string(dr.ID)
	r.ResourceID = dr.ResourceID
	r.URL = dr.URL
	r.Title = dr.Title
	r.Channel = dr.Channel
	r.Thumbnail = dr.Thumbnail
	r.Interval = string(dr.Interval)
	r.IntervalLabel = dr.Interval.Label()
	if dr.Note.IsPresent {
		note := dr.Note.Value
		r.Note = &note
	}
	r.CreatedAt = dr.CreatedAt
	r.NextReminder = dr.NextReminder
	r.NextIn = NextIn(dr.NextReminder, now)
	if dr.LastTriggered.IsPresent {
		lastTriggered := dr.LastTriggered.Value
		r.LastTriggered = &lastTriggered
	}
}

// NextIn renders how far next is from now in words, "due" once it has passed.
func NextIn(next time.Time, now time.Time) string {
	if !next.After(now) {
		return "due"
	}
	return carbon.Time2Carbon(next).DiffForHumans(carbon.Time2Carbon(now))
}
