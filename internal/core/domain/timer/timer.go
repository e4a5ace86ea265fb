package timer

import (
	"context"
	"time"
)

type Name string

// Cleanup is reserved for the periodic maintenance timer.
const Cleanup Name = "cleanup"

// Timer arms one-shot wake-ups by name. Arming an already armed name replaces
// it, disarming an unknown name is a no-op.
type Timer interface {
	Arm(ctx context.Context, name Name, at time.Time) error
	Disarm(ctx context.Context, name Name) error
}

// Wakeup is one fired timer. Token identifies the arming that produced it.
type Wakeup struct {
	Name  Name
	Token string
}

// Wakeups delivers fired timers. A wake-up may wait in a queue while its
// timer is disarmed or re-armed, so it is acted on only after Confirm
// reports it current. A confirmed wake-up cannot be confirmed again.
type Wakeups interface {
	Fired() <-chan Wakeup
	Confirm(ctx context.Context, wakeup Wakeup) (bool, error)
}

// Registry remembers the current arm token of every timer name. Backends
// that cannot cancel a scheduled wake-up use it to drop stale ones: only a
// wake-up carrying the current token may be claimed, and only once.
type Registry interface {
	Register(ctx context.Context, name Name, token string) error
	Revoke(ctx context.Context, name Name) error
	Claim(ctx context.Context, name Name, token string) (bool, error)
}
