package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fillrate/internal/config"
	"fillrate/internal/domain"
)

const (
	rollupKeyPrefix     = "fillrate:rollup"
	rollupScanBatchSize = 100
)

// RollupCache memoizes the cross-location rollup per week window. The rollup
// is disposable derived state, so a cache miss just means recomputing it.
type RollupCache interface {
	Get(ctx context.Context, window domain.WeekWindow) ([]domain.AggregatedItem, bool, error)
	Set(ctx context.Context, window domain.WeekWindow, rollups []domain.AggregatedItem) error
	Invalidate(ctx context.Context, window domain.WeekWindow) error
	InvalidateAll(ctx context.Context) error
}

type redisRollupCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRollupCache struct{}

func NewRollupCache(cfg config.CacheConfig) (RollupCache, error) {
	if !cfg.Enabled {
		return &noopRollupCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRollupCache{client: client, ttl: ttl}, nil
}

func NewNoopRollupCache() RollupCache {
	return &noopRollupCache{}
}

func (c *redisRollupCache) Get(ctx context.Context, window domain.WeekWindow) ([]domain.AggregatedItem, bool, error) {
	payload, err := c.client.Get(ctx, rollupKey(window)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var rollups []domain.AggregatedItem
	if err := json.Unmarshal(payload, &rollups); err != nil {
		return nil, false, fmt.Errorf("decode rollup cache: %w", err)
	}

	return rollups, true, nil
}

func (c *redisRollupCache) Set(ctx context.Context, window domain.WeekWindow, rollups []domain.AggregatedItem) error {
	payload, err := json.Marshal(rollups)
	if err != nil {
		return fmt.Errorf("encode rollup cache: %w", err)
	}

	if err := c.client.Set(ctx, rollupKey(window), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisRollupCache) Invalidate(ctx context.Context, window domain.WeekWindow) error {
	return c.client.Del(ctx, rollupKey(window)).Err()
}

func (c *redisRollupCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, rollupKeyPrefix, rollupScanBatchSize)
}

func (n *noopRollupCache) Get(ctx context.Context, window domain.WeekWindow) ([]domain.AggregatedItem, bool, error) {
	return nil, false, nil
}

func (n *noopRollupCache) Set(ctx context.Context, window domain.WeekWindow, rollups []domain.AggregatedItem) error {
	return nil
}

func (n *noopRollupCache) Invalidate(ctx context.Context, window domain.WeekWindow) error {
	return nil
}

func (n *noopRollupCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func rollupKey(window domain.WeekWindow) string {
	return fmt.Sprintf("%s:%s", rollupKeyPrefix, window.WeekStartDate.Format("2006-01-02"))
}
