package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Report cache keys
const (
	DashboardKey = "report:dashboard"
	AgingKeyFmt  = "report:aging:%s" // receivable / payable
	dashboardTTL = 2 * time.Minute
	agingTTL     = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. Callers treat a nil client as
// a cache miss, so the app still works when Redis is down.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// GetCachedDashboard returns cached dashboard JSON if available
func GetCachedDashboard(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, DashboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheDashboard caches dashboard JSON for a short window
func CacheDashboard(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, DashboardKey, data, dashboardTTL)
}

// GetCachedAging returns cached aging report JSON if available
func GetCachedAging(ctx context.Context, side string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(AgingKeyFmt, side)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheAging caches an aging report JSON
func CacheAging(ctx context.Context, side string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(AgingKeyFmt, side), data, agingTTL)
}

// InvalidateReports drops all cached report data. Called after any
// invoice, purchase or payment write.
func InvalidateReports(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardKey,
		fmt.Sprintf(AgingKeyFmt, "receivable"),
		fmt.Sprintf(AgingKeyFmt, "payable"))
}
