package reminder

import "errors"

var (
	ErrReminderDoesNotExist  = errors.New("reminder does not exist")
	ErrReminderAlreadyExists = errors.New("reminder with the same ID already exists")
)
