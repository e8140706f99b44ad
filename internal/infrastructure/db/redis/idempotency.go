package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore maps a create request's key to the product it produced.
// Key format: idempotency:<owner_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Reserve claims the key for productID with SETNX. When the key is already
// held, the product id stored under it is returned instead.
func (s *IdempotencyStore) Reserve(ctx context.Context, ownerID, key, productID string) (string, bool, error) {
	k := idempotencyKey(ownerID, key)
	ok, err := s.client.SetNX(ctx, k, productID, s.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	id, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	return id, false, nil
}

// Release drops a reservation whose product was never stored.
func (s *IdempotencyStore) Release(ctx context.Context, ownerID, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(ownerID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(ownerID, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", ownerID, key)
}
