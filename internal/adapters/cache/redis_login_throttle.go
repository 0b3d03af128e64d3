package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLoginThrottle stores failed-attempt counters in Redis with a sliding TTL.
// Keys self-expire at the lockout window; there is no sweeping logic.
type RedisLoginThrottle struct {
	client *redis.Client
}

// NewRedisLoginThrottle creates a throttle backed by Redis counters.
func NewRedisLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{client: client}
}

func (s *RedisLoginThrottle) Attempts(ctx context.Context, identifier, origin string) (int, error) {
	count, err := s.client.Get(ctx, throttleKey(identifier, origin)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

func (s *RedisLoginThrottle) RecordFailure(ctx context.Context, identifier, origin string, window time.Duration) (int, error) {
	key := throttleKey(identifier, origin)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (s *RedisLoginThrottle) Clear(ctx context.Context, identifier, origin string) error {
	return s.client.Del(ctx, throttleKey(identifier, origin)).Err()
}

func throttleKey(identifier, origin string) string {
	return "login-attempts:" + identifier + ":" + origin
}
