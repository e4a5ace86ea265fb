package dbreminder

import (
	"encoding/json"
	c "rewatch/internal/core/domain/common"
	"rewatch/internal/core/domain/reminder"
	"time"
)

// record is the stored shape of a reminder, as the browser extension kept it
// in local storage. Times are epoch milliseconds.
type record struct {
	ID            string  `json:"id"`
	ResourceID    string  `json:"videoId"`
	ResourceIDAlt string  `json:"resourceId,omitempty"`
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	Channel       string  `json:"channel"`
	Thumbnail     string  `json:"thumbnail"`
	Interval      string  `json:"interval"`
	Note          *string `json:"note,omitempty"`
	CreatedAt     int64   `json:"createdAt"`
	NextReminder  int64   `json:"nextReminder"`
	LastTriggered *int64  `json:"lastTriggered,omitempty"`
}

func encodeReminders(reminders []reminder.Reminder) ([]byte, error) {
	records := make([]record, 0, len(reminders))
	for _, rem := range reminders {
		r := record{
			ID:           string(rem.ID),
			ResourceID:   rem.ResourceID,
			URL:          rem.URL,
			Title:        rem.Title,
			Channel:      rem.Channel,
			Thumbnail:    rem.Thumbnail,
			Interval:     string(rem.Interval),
			CreatedAt:    rem.CreatedAt.UnixMilli(),
			NextReminder: rem.NextReminder.UnixMilli(),
		}
		if rem.Note.IsPresent {
			note := rem.Note.Value
			r.Note = &note
		}
		if rem.LastTriggered.IsPresent {
			triggered := rem.LastTriggered.Value.UnixMilli()
			r.LastTriggered = &triggered
		}
		records = append(records, r)
	}
	return json.Marshal(records)
}

func decodeReminders(data []byte) (reminder.Collection, error) {
	if len(data) == 0 {
		return reminder.Collection{}, nil
	}
	records := make([]record, 0)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	reminders := make(reminder.Collection, 0, len(records))
	for _, r := range records {
		if r.ResourceID == "" {
			r.ResourceID = r.ResourceIDAlt
		}
		rem := reminder.Reminder{
			ID:           reminder.ID(r.ID),
			ResourceID:   r.ResourceID,
			URL:          r.URL,
			Title:        r.Title,
			Channel:      r.Channel,
			Thumbnail:    r.Thumbnail,
			Interval:     reminder.Interval(r.Interval),
			CreatedAt:    fromMillis(r.CreatedAt),
			NextReminder: fromMillis(r.NextReminder),
		}
		if r.Note != nil {
			rem.Note = c.NewOptional(*r.Note, true)
		}
		if r.LastTriggered != nil {
			rem.LastTriggered = c.NewOptional(fromMillis(*r.LastTriggered), true)
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
