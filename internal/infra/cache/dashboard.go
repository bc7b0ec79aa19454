package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gymdesk/internal/domain/member"

	"github.com/redis/go-redis/v9"
)

const dashboardKey = "gymdesk:dashboard:stats"

var _ member.StatsCache = (*DashboardCache)(nil)

// DashboardCache caches the dashboard summary in Redis for a short TTL so
// repeated dashboard loads don't hammer the store.
//
// It fails open on every path: Redis problems are logged and treated as a
// cache miss, never surfaced to the caller.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache creates a Redis-backed dashboard cache.
func NewDashboardCache(redisAddr, password string, db int, ttl time.Duration) *DashboardCache {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})
	return &DashboardCache{client: client, ttl: ttl}
}

// Get returns the cached stats, or nil on a miss or Redis error.
func (c *DashboardCache) Get(ctx context.Context) *member.DashboardStats {
	data, err := c.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Error("dashboard cache read failed", "error", err)
		}
		return nil
	}

	var stats member.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		slog.Error("dashboard cache payload corrupt", "error", err)
		return nil
	}
	return &stats
}

// Set stores the stats until the TTL elapses.
func (c *DashboardCache) Set(ctx context.Context, stats *member.DashboardStats) {
	if stats == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		slog.Error("dashboard cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, dashboardKey, data, c.ttl).Err(); err != nil {
		slog.Error("dashboard cache write failed", "error", err)
	}
}

// Invalidate drops the cached stats after a membership change.
func (c *DashboardCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, dashboardKey).Err(); err != nil {
		slog.Error("dashboard cache invalidation failed", "error", err)
	}
}

// Close closes the Redis connection.
func (c *DashboardCache) Close() error {
	return c.client.Close()
}
