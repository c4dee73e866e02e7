package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/modernstore/backend/internal/application/report"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache implements the dashboard's byte cache on Redis. It is suitable
// for deployments where multiple instances should share cached aggregates.
//
// Failures are logged and swallowed: a broken cache must never fail a
// dashboard request, only slow it down.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCache creates a new Redis-backed cache
func NewRedisCache(cfg RedisConfig, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client:    client,
		keyPrefix: "store:cache:",
		logger:    logger.Named("cache"),
	}, nil
}

// NewRedisCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCacheWithClient(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = "store:cache:"
	}
	return &RedisCache{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger.Named("cache"),
	}
}

// Get returns the cached value for key, or false on miss or error
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores value under key with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements the dashboard cache port
var _ report.Cache = (*RedisCache)(nil)
