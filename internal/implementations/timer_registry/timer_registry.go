package timerregistry

import (
	"context"
	"fmt"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/timer"

	"github.com/go-redis/redis/v9"
)

const DefaultKey = "rewatch:timers"

var claimScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], ARGV[1]) == ARGV[2] then
	redis.call("HDEL", KEYS[1], ARGV[1])
	return 1
end
return 0
`)

// Redis keeps timer tokens in one hash, field per timer name.
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

func (r *Redis) Register(ctx context.Context, name timer.Name, token string) error {
	if err := r.redisClient.HSet(ctx, r.key, string(name), token).Err(); err != nil {
		return fmt.Errorf("could not register timer %s: %w", name, err)
	}
	return nil
}

func (r *Redis) Revoke(ctx context.Context, name timer.Name) error {
	if err := r.redisClient.HDel(ctx, r.key, string(name)).Err(); err != nil {
		return fmt.Errorf("could not revoke timer %s: %w", name, err)
	}
	return nil
}

func (r *Redis) Claim(ctx context.Context, name timer.Name, token string) (bool, error) {
	claimed, err := claimScript.Run(ctx, r.redisClient, []string{r.key}, string(name), token).Int()
	if err != nil {
		return false, fmt.Errorf("could not claim timer %s: %w", name, err)
	}
	return claimed == 1, nil
}
