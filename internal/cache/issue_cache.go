package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "Tracker/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList  = "issue:list"
	keyStats = "issue:stats"
)

// IssueCache caches the issue list and stats aggregates in Redis.
type IssueCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewIssueCache returns a new IssueCache.
func NewIssueCache(rdb *redis.Client, ttl time.Duration) *IssueCache {
	return &IssueCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached list or nil if miss.
func (c *IssueCache) GetList(ctx context.Context) ([]dom.Issue, error) {
	b, err := c.rdb.Get(ctx, keyList).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Issue
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the list in cache.
func (c *IssueCache) SetList(ctx context.Context, list []dom.Issue) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyList, b, c.ttl).Err()
}

// GetStats returns the cached stats or nil if miss.
func (c *IssueCache) GetStats(ctx context.Context) (*dom.Stats, error) {
	b, err := c.rdb.Get(ctx, keyStats).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats dom.Stats
	if err := json.Unmarshal(b, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores the stats in cache.
func (c *IssueCache) SetStats(ctx context.Context, stats dom.Stats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyStats, b, c.ttl).Err()
}

// InvalidateAll removes both keys (cache invalidation on write).
func (c *IssueCache) InvalidateAll(ctx context.Context) error {
	return c.rdb.Del(ctx, keyList, keyStats).Err()
}
