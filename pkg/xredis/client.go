package xredis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/termwatch/backend/pkg/xcontext"
)

type Client interface {
	Exist(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Sorted list
	ZAdd(ctx context.Context, key string, z redis.Z) error
	ZIncrBy(ctx context.Context, key string, incr int64, member string) error
	ZRevRangeWithScores(ctx context.Context, key string, offset, limit int) ([]redis.Z, error)
	ZRevRank(ctx context.Context, key string, member string) (uint64, error)
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Uint64()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (c *client) Del(ctx context.Context, key ...string) error {
	return c.redisClient.Del(ctx, key...).Err()
}

func (c *client) Keys(ctx context.Context, pattern string) ([]string, error) {
	return c.redisClient.Keys(ctx, pattern).Result()
}

func (c *client) ZAdd(ctx context.Context, key string, z redis.Z) error {
	return c.redisClient.ZAdd(ctx, key, z).Err()
}

func (c *client) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	return c.redisClient.ZIncrBy(ctx, key, float64(incr), member).Err()
}

func (c *client) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	return c.redisClient.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1)).Result()
}

func (c *client) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	rank, err := c.redisClient.ZRevRank(ctx, key, member).Uint64()
	if err != nil {
		return 0, err
	}

	return rank, nil
}
