package schema

import (
	"encoding/json"
	"time"
)

// TimerFired is the delayed message published for every armed timer.
type TimerFired struct {
	Name  string    `json:"name"`
	Token string    `json:"token"`
	At    time.Time `json:"at"`
}

func (t *TimerFired) Marshal() ([]byte, error) {
	return json.Marshal(t)
}

func (t *TimerFired) Unmarshal(data []byte) error {
	return json.Unmarshal(data, t)
}
