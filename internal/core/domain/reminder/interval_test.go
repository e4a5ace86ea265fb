package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalDuration(t *testing.T) {
	cases := []struct {
		interval Interval
		expected time.Duration
	}{
		{"1mi", 60 * time.Second},
		{"1h", 3_600_000 * time.Millisecond},
		{"2h", 2 * time.Hour},
		{"6h", 6 * time.Hour},
		{"12h", 12 * time.Hour},
		{"1d", 24 * time.Hour},
		{"2d", 48 * time.Hour},
		{"3d", 72 * time.Hour},
		{"1w", 7 * 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"1m", 30 * 24 * time.Hour},
	}

	for _, testcase := range cases {
		t.Run(string(testcase.interval), func(t *testing.T) {
			assert.True(t, testcase.interval.IsKnown())
			assert.Equal(t, testcase.expected, testcase.interval.Duration())
		})
	}
}

func TestIntervalLabel(t *testing.T) {
	cases := []struct {
		interval Interval
		expected string
	}{
		{"1mi", "Every 1 Minutes"},
		{"1h", "Every Hour"},
		{"2h", "Every 2 Hours"},
		{"6h", "Every 6 Hours"},
		{"12h", "Every 12 Hours"},
		{"1d", "Daily"},
		{"2d", "Every 2 Days"},
		{"3d", "Every 3 Days"},
		{"1w", "Weekly"},
		{"2w", "Every 2 Weeks"},
		{"1m", "Monthly"},
	}

	for _, testcase := range cases {
		t.Run(string(testcase.interval), func(t *testing.T) {
			assert.Equal(t, testcase.expected, testcase.interval.Label())
		})
	}
}

func TestUnknownIntervalFallsBackForDurationOnly(t *testing.T) {
	cases := []Interval{"", "5h", "1M", "1d ", "daily"}

	for _, interval := range cases {
		t.Run(string(interval), func(t *testing.T) {
			assert.False(t, interval.IsKnown())
			assert.Equal(t, 24*time.Hour, interval.Duration())
			assert.Equal(t, string(interval), interval.Label())
		})
	}
}

func TestIntervalsDisplayOrder(t *testing.T) {
	intervals := Intervals()
	assert.Len(t, intervals, len(catalog))
	assert.Equal(t, EveryMinute, intervals[0])
	assert.Equal(t, EveryMonth, intervals[len(intervals)-1])
	for ix := 1; ix < len(intervals); ix++ {
		assert.Less(t, intervals[ix-1].Duration(), intervals[ix].Duration())
	}

	intervals[0] = "mutated"
	assert.Equal(t, EveryMinute, Intervals()[0])
}

func TestIntervalNextFrom(t *testing.T) {
	from := time.Date(2024, 3, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), EveryMinute.NextFrom(from))
	assert.Equal(t, time.Date(2024, 4, 29, 23, 59, 0, 0, time.UTC), EveryMonth.NextFrom(from))
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), Interval("nope").NextFrom(from))
}
