package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisPasswordResetStore keeps hashed single-use reset tokens and per-email
// cooldown markers. Both key families expire via Redis TTL.
type RedisPasswordResetStore struct {
	client *redis.Client
}

// NewRedisPasswordResetStore creates the reset-flow cache adapter.
func NewRedisPasswordResetStore(client *redis.Client) *RedisPasswordResetStore {
	return &RedisPasswordResetStore{client: client}
}

func (s *RedisPasswordResetStore) SaveToken(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, "reset-token:"+tokenHash, userID.String(), ttl).Err()
}

func (s *RedisPasswordResetStore) LookupToken(ctx context.Context, tokenHash string) (uuid.UUID, bool, error) {
	raw, err := s.client.Get(ctx, "reset-token:"+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parse reset token owner: %w", err)
	}
	return userID, true, nil
}

func (s *RedisPasswordResetStore) DeleteToken(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, "reset-token:"+tokenHash).Err()
}

func (s *RedisPasswordResetStore) MarkCooldown(ctx context.Context, email string, ttl time.Duration) error {
	return s.client.Set(ctx, "reset-cooldown:"+email, email, ttl).Err()
}

func (s *RedisPasswordResetStore) InCooldown(ctx context.Context, email string) (bool, error) {
	n, err := s.client.Exists(ctx, "reset-cooldown:"+email).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
