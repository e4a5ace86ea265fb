package handoff

import (
	"context"
	"time"
)

type FakeStore struct {
	Data     *VideoData
	TTL      time.Duration
	PutError error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (s *FakeStore) Put(ctx context.Context, data VideoData, ttl time.Duration) error {
	if s.PutError != nil {
		return s.PutError
	}
	s.Data = &data
	s.TTL = ttl
	return nil
}

func (s *FakeStore) Take(ctx context.Context) (VideoData, error) {
	if s.Data == nil {
		return VideoData{}, ErrNoVideoData
	}
	data := *s.Data
	s.Data = nil
	return data, nil
}
