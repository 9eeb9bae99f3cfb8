package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// VerificationCache stores one-time email verification codes for newly
// registered institutions. Codes expire on their own via TTL.
type VerificationCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewVerificationCache creates a new VerificationCache.
func NewVerificationCache(redis *RedisClient, ttl time.Duration) *VerificationCache {
	return &VerificationCache{redis: redis, ttl: ttl}
}

func (c *VerificationCache) key(institutionID int) string {
	return fmt.Sprintf("verify:institution:%d", institutionID)
}

// Store saves the code for an institution, replacing any previous one.
func (c *VerificationCache) Store(ctx context.Context, institutionID int, code string) error {
	return c.redis.Set(ctx, c.key(institutionID), code, c.ttl)
}

// Check compares a submitted code against the stored one. A missing key
// (expired or never issued) is reported as no match, not an error.
func (c *VerificationCache) Check(ctx context.Context, institutionID int, code string) (bool, error) {
	stored, err := c.redis.Get(ctx, c.key(institutionID))
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == code, nil
}

// Invalidate removes the code once it has been used.
func (c *VerificationCache) Invalidate(ctx context.Context, institutionID int) error {
	return c.redis.Delete(ctx, c.key(institutionID))
}
