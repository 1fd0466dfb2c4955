package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// SummaryCache implements ports.SummaryCache using Redis. It mirrors the
// serialized summary view of an account so bulk holdings reads can skip
// the account store.
type SummaryCache struct {
	client *goredis.Client
	prefix string
}

// NewSummaryCache creates a new Redis-backed summary cache.
func NewSummaryCache(client *goredis.Client) *SummaryCache {
	return &SummaryCache{
		client: client,
		prefix: "summary:",
	}
}

// Get retrieves the cached summary payload for an account.
// Returns nil, nil if no payload is cached.
func (c *SummaryCache) Get(ctx context.Context, accountID uuid.UUID) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+accountID.String()).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis summary get: %w", err)
	}
	return val, nil
}

// Set stores a summary payload with TTL.
func (c *SummaryCache) Set(ctx context.Context, accountID uuid.UUID, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+accountID.String(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis summary set: %w", err)
	}
	return nil
}

// Invalidate drops the cached payload for an account. Missing keys are not
// an error.
func (c *SummaryCache) Invalidate(ctx context.Context, accountID uuid.UUID) error {
	if err := c.client.Del(ctx, c.prefix+accountID.String()).Err(); err != nil {
		return fmt.Errorf("redis summary invalidate: %w", err)
	}
	return nil
}
