package handoffstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/handoff"
	"time"

	"github.com/go-redis/redis/v9"
)

const DefaultKey = "rewatch:handoff"

type Redis struct {
	redisClient *redis.Client
	key         string
}

func NewRedis(redisClient *redis.Client, key string) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if key == "" {
		key = DefaultKey
	}
	return &Redis{redisClient: redisClient, key: key}
}

func (r *Redis) Put(ctx context.Context, data handoff.VideoData, ttl time.Duration) error {
	value, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("could not encode video data: %w", err)
	}
	if err := r.redisClient.Set(ctx, r.key, value, ttl).Err(); err != nil {
		return fmt.Errorf("could not stash video data: %w", err)
	}
	return nil
}

func (r *Redis) Take(ctx context.Context) (handoff.VideoData, error) {
	data := handoff.VideoData{}
	value, err := r.redisClient.GetDel(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return data, handoff.ErrNoVideoData
	}
	if err != nil {
		return data, fmt.Errorf("could not take video data: %w", err)
	}
	if err := json.Unmarshal(value, &data); err != nil {
		return data, fmt.Errorf("could not decode video data: %w", err)
	}
	return data, nil
}
