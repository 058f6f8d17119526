package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client caches derived metrics (counts, top-N aggregations) so listing
// dashboards do not recompute them on every request.
type Client struct {
	rdb *redis.Client
}

var ErrCacheMiss = fmt.Errorf("cache miss")

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) SetMetric(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal metric: %w", err)
	}

	return c.rdb.Set(ctx, "metrics:"+key, jsonData, ttl).Err()
}

func (c *Client) GetMetric(key string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "metrics:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get metric: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) DeleteMetric(key string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "metrics:"+key).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
