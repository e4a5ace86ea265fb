package autoclearer

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/notification"
	"sync"
	"time"
)

// AutoClearer dismisses alerts after a delay. Scheduling the same ID again
// restarts its delay.
type AutoClearer struct {
	log      logging.Logger
	notifier notification.Notifier
	pending  map[notification.ID]*time.Timer
	lock     sync.Mutex
}

func New(log logging.Logger, notifier notification.Notifier) *AutoClearer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	return &AutoClearer{
		log:      log,
		notifier: notifier,
		pending:  make(map[notification.ID]*time.Timer),
	}
}

func (c *AutoClearer) ClearAfter(id notification.ID, delay time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if existing, ok := c.pending[id]; ok {
		existing.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		c.lock.Lock()
		if c.pending[id] == t {
			delete(c.pending, id)
		}
		c.lock.Unlock()
		c.clear(id)
	})
	c.pending[id] = t
}

// Stop drops pending clears.
func (c *AutoClearer) Stop() {
	c.lock.Lock()
	defer c.lock.Unlock()
	for id, t := range c.pending {
		t.Stop()
		delete(c.pending, id)
	}
}

func (c *AutoClearer) clear(id notification.ID) {
	ctx := context.Background()
	if err := c.notifier.Clear(ctx, id); err != nil {
		c.log.Warning(ctx, "Could not auto-clear notification.", logging.Entry("notificationID", id), logging.Entry("err", err))
	}
}
