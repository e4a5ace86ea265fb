package reminder

import "time"

const day = 24 * time.Hour

// Interval is a symbolic recurrence code chosen in the popup.
type Interval string

const (
	EveryMinute      Interval = "1mi"
	EveryHour        Interval = "1h"
	EveryTwoHours    Interval = "2h"
	EverySixHours    Interval = "6h"
	EveryTwelveHours Interval = "12h"
	EveryDay         Interval = "1d"
	EveryTwoDays     Interval = "2d"
	EveryThreeDays   Interval = "3d"
	EveryWeek        Interval = "1w"
	EveryTwoWeeks    Interval = "2w"
	EveryMonth       Interval = "1m"

	DefaultInterval = EveryDay
)

type intervalInfo struct {
	duration time.Duration
	label    string
}

var catalog = map[Interval]intervalInfo{
	EveryMinute:      {time.Minute, "Every 1 Minutes"},
	EveryHour:        {time.Hour, "Every Hour"},
	EveryTwoHours:    {2 * time.Hour, "Every 2 Hours"},
	EverySixHours:    {6 * time.Hour, "Every 6 Hours"},
	EveryTwelveHours: {12 * time.Hour, "Every 12 Hours"},
	EveryDay:         {day, "Daily"},
	EveryTwoDays:     {2 * day, "Every 2 Days"},
	EveryThreeDays:   {3 * day, "Every 3 Days"},
	EveryWeek:        {7 * day, "Weekly"},
	EveryTwoWeeks:    {14 * day, "Every 2 Weeks"},
	// Fixed approximation, not calendar aware.
	EveryMonth: {30 * day, "Monthly"},
}

var displayOrder = []Interval{
	EveryMinute,
	EveryHour,
	EveryTwoHours,
	EverySixHours,
	EveryTwelveHours,
	EveryDay,
	EveryTwoDays,
	EveryThreeDays,
	EveryWeek,
	EveryTwoWeeks,
	EveryMonth,
}

// Intervals returns the known interval codes in display order.
func Intervals() []Interval {
	intervals := make([]Interval, len(displayOrder))
	copy(intervals, displayOrder)
	return intervals
}

func (i Interval) IsKnown() bool {
	_, ok := catalog[i]
	return ok
}

// Duration falls back to the daily duration for unknown codes.
func (i Interval) Duration() time.Duration {
	info, ok := catalog[i]
	if !ok {
		return catalog[DefaultInterval].duration
	}
	return info.duration
}

// Label has no fallback: unknown codes are passed through unchanged.
func (i Interval) Label() string {
	info, ok := catalog[i]
	if !ok {
		return string(i)
	}
	return info.label
}

func (i Interval) NextFrom(t time.Time) time.Time {
	return t.Add(i.Duration())
}
