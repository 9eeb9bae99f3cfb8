package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const stockAlertKey = "warehouse:low_stock"

// StockAlert is one product flagged by the stock check worker.
type StockAlert struct {
	ProductID    int    `json:"productId"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	StockQty     int    `json:"stockQty"`
	ReorderLevel int    `json:"reorderLevel"`
}

// StockAlertSnapshot is the worker's last low-stock scan result, served on
// the admin dashboard without hitting the products table again.
type StockAlertSnapshot struct {
	Alerts    []StockAlert `json:"alerts"`
	ScannedAt time.Time    `json:"scannedAt"`
}

// StockAlertCache holds the snapshot in Redis.
type StockAlertCache struct {
	redis *RedisClient
}

// NewStockAlertCache creates a new StockAlertCache.
func NewStockAlertCache(redis *RedisClient) *StockAlertCache {
	return &StockAlertCache{redis: redis}
}

// Store replaces the snapshot. Kept for twice the scan interval so a
// stalled worker surfaces as a missing snapshot instead of stale data.
func (c *StockAlertCache) Store(ctx context.Context, snapshot *StockAlertSnapshot, scanInterval time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal stock alert snapshot: %w", err)
	}
	return c.redis.Set(ctx, stockAlertKey, string(data), 2*scanInterval)
}

// Get returns the last snapshot, or (nil, nil) when none exists.
func (c *StockAlertCache) Get(ctx context.Context) (*StockAlertSnapshot, error) {
	raw, err := c.redis.Get(ctx, stockAlertKey)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot StockAlertSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stock alert snapshot: %w", err)
	}
	return &snapshot, nil
}
