package turnlock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "turnlock:session:"

// RedisLocker holds turn slots in Redis so multiple API instances agree on
// which session has a turn in flight.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(redisURL string) (*RedisLocker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisLocker{client: redis.NewClient(opts)}, nil
}

func NewRedisLockerWithClient(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) key(sessionID uuid.UUID) string {
	return redisKeyPrefix + sessionID.String()
}

func (l *RedisLocker) Acquire(ctx context.Context, sessionID uuid.UUID) error {
	ok, err := l.client.SetNX(ctx, l.key(sessionID), "1", TTL).Result()
	if err != nil {
		return fmt.Errorf("acquire turn lock: %w", err)
	}
	if !ok {
		return ErrTurnInFlight
	}
	return nil
}

func (l *RedisLocker) Release(ctx context.Context, sessionID uuid.UUID) error {
	if err := l.client.Del(ctx, l.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("release turn lock: %w", err)
	}
	return nil
}
