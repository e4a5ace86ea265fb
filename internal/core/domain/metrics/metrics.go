package metrics

import "time"

// Recorder collects per-operation counters and latencies.
type Recorder interface {
	ObserveOperation(operation string, outcome Outcome, elapsed time.Duration)
	ReminderFired(displayed bool)
	RemindersCollected(count int)
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

func OutcomeOf(err error) Outcome {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
