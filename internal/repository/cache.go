package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/forno-rosati/bakery-orders-service/internal/config"
	"github.com/forno-rosati/bakery-orders-service/internal/models"
)

const (
	orderListKey    = "orders:list"
	defaultCacheTTL = 5 * time.Minute
)

// RedisOrderCache caches the full order list between dashboard polls. It is
// only wired in when FEATURE_ORDER_CACHING is on; the default deployment
// reads straight from the database every time.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewRedisOrderCache creates a Redis-backed order cache.
func NewRedisOrderCache(cfg config.RedisConfig, logger *logrus.Entry) *RedisOrderCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisOrderCache{
		client: client,
		ttl:    ttl,
		logger: logger.WithField("component", "order-cache"),
	}
}

// newRedisOrderCacheWithClient is used by tests to inject a miniredis client.
func newRedisOrderCacheWithClient(client *redis.Client, ttl time.Duration, logger *logrus.Entry) *RedisOrderCache {
	return &RedisOrderCache{client: client, ttl: ttl, logger: logger}
}

// GetList returns the cached order list, or nil on a miss.
func (c *RedisOrderCache) GetList(ctx context.Context) ([]*models.Order, error) {
	data, err := c.client.Get(ctx, orderListKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss")
		return nil, nil
	}
	if err != nil {
		c.logger.WithError(err).Error("Cache get error")
		return nil, err
	}

	var orders []*models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(orders)).Debug("Cache hit")
	return orders, nil
}

// SetList stores the order list.
func (c *RedisOrderCache) SetList(ctx context.Context, orders []*models.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, orderListKey, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).Error("Cache set error")
		return err
	}
	return nil
}

// Invalidate drops the cached list. Called after every mutation.
func (c *RedisOrderCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, orderListKey).Err(); err != nil {
		c.logger.WithError(err).Error("Cache invalidate error")
		return err
	}
	return nil
}

// Close releases the Redis connection.
func (c *RedisOrderCache) Close() error {
	return c.client.Close()
}
