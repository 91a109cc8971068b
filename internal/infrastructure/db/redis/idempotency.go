package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour

	// pendingValue marks a key whose first request has not stored its blog
	// yet. It expires on its own if that request dies.
	pendingValue = "pending"
	pendingTTL   = time.Minute
)

// IdempotencyStore maps a creator's Idempotency-Key to the blog it produced.
// Key format: idem:blog:<user_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. Completed keys expire after ttl, or after
// a day when ttl is not positive.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key with SETNX. If the key is taken it returns the stored
// blog ID, or "" while the holder is still pending.
func (s *IdempotencyStore) Reserve(ctx context.Context, userID, key string) (string, bool, error) {
	k := s.key(userID, key)
	for range 2 {
		ok, err := s.client.SetNX(ctx, k, pendingValue, pendingTTL).Result()
		if err != nil {
			return "", false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return "", true, nil
		}

		val, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("idempotency lookup: %w", err)
		}
		if val == pendingValue {
			return "", false, nil
		}
		return val, false, nil
	}
	return "", false, nil
}

// Complete overwrites the reservation with blogID for the full TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, userID, key, blogID string) error {
	if err := s.client.Set(ctx, s.key(userID, key), blogID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release deletes the reservation so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, userID, key string) error {
	if err := s.client.Del(ctx, s.key(userID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(userID, key string) string {
	return fmt.Sprintf("idem:blog:%s:%s", userID, key)
}
