package dbreminder

import (
	c "rewatch/internal/core/domain/common"
	"rewatch/internal/core/domain/reminder"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEncodeUsesStoredFieldNames(t *testing.T) {
	rem := reminder.Reminder{
		ID:           "lq3k1x2ab",
		ResourceID:   "abc",
		URL:          "u",
		Title:        "T",
		Channel:      "C",
		Thumbnail:    "th",
		Interval:     reminder.EveryWeek,
		CreatedAt:    time.UnixMilli(1700000000000),
		NextReminder: time.UnixMilli(1700604800000),
	}

	data, err := encodeReminders([]reminder.Reminder{rem})

	require.NoError(t, err)
	require.JSONEq(t, `[{
		"id": "lq3k1x2ab",
		"videoId": "abc",
		"url": "u",
		"title": "T",
		"channel": "C",
		"thumbnail": "th",
		"interval": "1w",
		"createdAt": 1700000000000,
		"nextReminder": 1700604800000
	}]`, string(data))
}

func TestDecodeOptionalFields(t *testing.T) {
	data := []byte(`[{"id":"a","videoId":"abc","interval":"1d","note":"n","createdAt":1,"nextReminder":2,"lastTriggered":3}]`)

	reminders, err := decodeReminders(data)

	require.NoError(t, err)
	require.Len(t, reminders, 1)
	require.Equal(t, c.NewOptional("n", true), reminders[0].Note)
	require.Equal(t, c.NewOptional(time.UnixMilli(3).UTC(), true), reminders[0].LastTriggered)
	require.Equal(t, time.UnixMilli(2).UTC(), reminders[0].NextReminder)
}

func TestDecodeExtensionDocument(t *testing.T) {
	data := []byte(`[{
		"id": "lq3k1x2ab",
		"videoId": "dQw4w9WgXcQ",
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"title": "T",
		"channel": "C",
		"thumbnail": "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg",
		"interval": "1m",
		"note": "",
		"createdAt": 1700000000000,
		"nextReminder": 1702592000000
	}]`)

	reminders, err := decodeReminders(data)

	require.NoError(t, err)
	require.Len(t, reminders, 1)
	require.Equal(t, "dQw4w9WgXcQ", reminders[0].ResourceID)
	require.Equal(t, reminder.EveryMonth, reminders[0].Interval)
}

func TestDecodeAcceptsResourceIDField(t *testing.T) {
	reminders, err := decodeReminders([]byte(`[{"id":"a","resourceId":"abc","createdAt":1,"nextReminder":2}]`))

	require.NoError(t, err)
	require.Equal(t, "abc", reminders[0].ResourceID)
}

func TestDecodeEmpty(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("[]")} {
		reminders, err := decodeReminders(data)
		require.NoError(t, err)
		require.Empty(t, reminders)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := decodeReminders([]byte("{"))

	require.Error(t, err)
}
