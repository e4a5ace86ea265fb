package reminder

import (
	"rewatch/internal/core/domain/notification"
	"rewatch/internal/core/domain/timer"
	"strings"
)

const namePrefix = "reminder_"

// SnoozeConfirmationID identifies the short-lived alert shown after a snooze.
const SnoozeConfirmationID notification.ID = "snooze_confirmation"

func (id ID) TimerName() timer.Name {
	return timer.Name(namePrefix + string(id))
}

func (id ID) NotificationID() notification.ID {
	return notification.ID(namePrefix + string(id))
}

func IDFromTimerName(name timer.Name) (ID, bool) {
	return idFromName(string(name))
}

func IDFromNotificationID(id notification.ID) (ID, bool) {
	return idFromName(string(id))
}

// IsOwnNotification reports whether an alert was created by the reminder
// engine and may be cleared on startup.
func IsOwnNotification(id notification.ID) bool {
	_, ok := IDFromNotificationID(id)
	return ok || id == SnoozeConfirmationID
}

func idFromName(name string) (ID, bool) {
	if !strings.HasPrefix(name, namePrefix) {
		return "", false
	}
	id := strings.TrimPrefix(name, namePrefix)
	if id == "" {
		return "", false
	}
	return ID(id), true
}
