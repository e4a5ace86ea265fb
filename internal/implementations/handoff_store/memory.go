package handoffstore

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/handoff"
	"sync"
	"time"
)

// Memory is used when no Redis is configured.
type Memory struct {
	now       func() time.Time
	data      *handoff.VideoData
	expiresAt time.Time
	lock      sync.Mutex
}

func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Memory{now: now}
}

func (m *Memory) Put(ctx context.Context, data handoff.VideoData, ttl time.Duration) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.data = &data
	m.expiresAt = m.now().Add(ttl)
	return nil
}

func (m *Memory) Take(ctx context.Context) (handoff.VideoData, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	data := m.data
	m.data = nil
	if data == nil || !m.now().Before(m.expiresAt) {
		return handoff.VideoData{}, handoff.ErrNoVideoData
	}
	return *data, nil
}
