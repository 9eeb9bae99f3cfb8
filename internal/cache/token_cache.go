package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshSession is what a refresh token resolves to.
type RefreshSession struct {
	UserID        int       `json:"userId"`
	Role          string    `json:"role"`
	InstitutionID int       `json:"institutionId,omitempty"`
	PatientID     int       `json:"patientId,omitempty"`
	IssuedAt      time.Time `json:"issuedAt"`
}

// TokenCache stores opaque refresh tokens in Redis. Rotation deletes the
// old token and stores a new one, so a replayed token fails the lookup.
type TokenCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewTokenCache creates a new TokenCache.
func NewTokenCache(redis *RedisClient, ttl time.Duration) *TokenCache {
	return &TokenCache{redis: redis, ttl: ttl}
}

func (c *TokenCache) key(token string) string {
	return fmt.Sprintf("refresh:%s", token)
}

// Store saves a refresh session under its token.
func (c *TokenCache) Store(ctx context.Context, token string, session *RefreshSession) error {
	session.IssuedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh session: %w", err)
	}
	return c.redis.Set(ctx, c.key(token), string(data), c.ttl)
}

// Get resolves a refresh token. Returns (nil, nil) when the token is
// unknown or expired.
func (c *TokenCache) Get(ctx context.Context, token string) (*RefreshSession, error) {
	raw, err := c.redis.Get(ctx, c.key(token))
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session RefreshSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh session: %w", err)
	}
	return &session, nil
}

// Revoke removes a refresh token (logout or rotation).
func (c *TokenCache) Revoke(ctx context.Context, token string) error {
	return c.redis.Delete(ctx, c.key(token))
}
