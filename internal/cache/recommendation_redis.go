// Package cache keeps generated recommendations in Redis so repeated
// requests inside the freshness window skip the database and the model.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"playnext/internal/recommend"
)

type RecommendationCache struct {
	client    *redis.Client
	freshness time.Duration
	now       func() time.Time
}

// NewRecommendationCache connects to redisURL (redis://...) and verifies the
// connection.
func NewRecommendationCache(ctx context.Context, redisURL string, freshness time.Duration) (*RecommendationCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRecommendationCacheWithClient(rdb, freshness), nil
}

// NewRecommendationCacheWithClient wraps an existing client. A nil client
// yields a cache that never hits.
func NewRecommendationCacheWithClient(client *redis.Client, freshness time.Duration) *RecommendationCache {
	return &RecommendationCache{client: client, freshness: freshness, now: time.Now}
}

func key(userID string) string {
	return fmt.Sprintf("recs:user:%s", userID)
}

func (c *RecommendationCache) disabled() bool {
	return c == nil || c.client == nil
}

// Get returns the cached result for userID, or nil when there is none or it
// has aged out of the freshness window.
func (c *RecommendationCache) Get(ctx context.Context, userID string) (*recommend.Result, error) {
	if c.disabled() {
		return nil, nil
	}

	data, err := c.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var res recommend.Result
	if err := json.Unmarshal(data, &res); err != nil {
		// Unreadable entries are dropped rather than served
		_ = c.client.Del(ctx, key(userID)).Err()
		return nil, nil
	}
	if !res.FreshAt(c.now(), c.freshness) {
		return nil, nil
	}
	return &res, nil
}

// Set stores res until the end of its freshness window. Results already
// outside the window are not stored.
func (c *RecommendationCache) Set(ctx context.Context, userID string, res recommend.Result) error {
	if c.disabled() {
		return nil
	}

	ttl := c.TTL(res)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}
	if err := c.client.Set(ctx, key(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops whatever is cached for userID.
func (c *RecommendationCache) Invalidate(ctx context.Context, userID string) error {
	if c.disabled() {
		return nil
	}
	return c.client.Del(ctx, key(userID)).Err()
}

// TTL is the time left in res's freshness window.
func (c *RecommendationCache) TTL(res recommend.Result) time.Duration {
	if c == nil {
		return 0
	}
	return res.GeneratedAt.Add(c.freshness).Sub(c.now())
}

func (c *RecommendationCache) Close() error {
	if c.disabled() {
		return nil
	}
	return c.client.Close()
}
