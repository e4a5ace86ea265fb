package ratelimiter

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	ratelimiter "rewatch/internal/core/domain/rate_limiter"
	"sync"
	"time"
)

type counter struct {
	window int64
	count  uint64
}

// Memory counts calls in process, for deployments without Redis.
type Memory struct {
	lock     sync.Mutex
	counters map[string]counter
	now      func() time.Time
}

func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Memory{counters: make(map[string]counter), now: now}
}

func (m *Memory) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	m.lock.Lock()
	defer m.lock.Unlock()

	window := limit.Interval.Window(m.now())
	c := m.counters[key]
	if c.window != window {
		c = counter{window: window}
	}
	c.count++
	m.counters[key] = c

	if c.count > uint64(limit.Value) {
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}
