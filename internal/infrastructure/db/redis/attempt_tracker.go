package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
	countField         = "count"
)

// AttemptTracker counts failed logins in Redis so every instance shares the
// same lockout state.
// Key format: <namespace>:<email>, hash field "count". The key TTL is refreshed
// on each failure, so expiry doubles as eviction of stale records.
type AttemptTracker struct {
	client      *redis.Client
	namespace   string
	maxAttempts int
	window      time.Duration
}

// NewAttemptTracker wraps client. An empty namespace means "lockout";
// non-positive limits fall back to 5 attempts and a 15 minute window.
func NewAttemptTracker(client *redis.Client, namespace string, maxAttempts int, window time.Duration) *AttemptTracker {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &AttemptTracker{client: client, namespace: namespace, maxAttempts: maxAttempts, window: window}
}

func (t *AttemptTracker) IsLocked(ctx context.Context, id string) (bool, time.Duration, error) {
	key := t.key(id)

	count, err := t.client.HGet(ctx, key, countField).Int()
	if errors.Is(err, redis.Nil) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("lockout check: %w", err)
	}
	if count < t.maxAttempts {
		return false, 0, nil
	}

	ttl, err := t.client.PTTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("lockout ttl: %w", err)
	}
	if ttl <= 0 {
		// expired between the two reads, or a key without TTL
		return false, 0, nil
	}
	return true, ttl, nil
}

func (t *AttemptTracker) RecordFailure(ctx context.Context, id string) error {
	key := t.key(id)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, countField, 1)
		pipe.PExpire(ctx, key, t.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("lockout record: %w", err)
	}
	return nil
}

func (t *AttemptTracker) Reset(ctx context.Context, id string) error {
	if err := t.client.Del(ctx, t.key(id)).Err(); err != nil {
		return fmt.Errorf("lockout reset: %w", err)
	}
	return nil
}

func (t *AttemptTracker) key(id string) string {
	return t.namespace + ":" + id
}
