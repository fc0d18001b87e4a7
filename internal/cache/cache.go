package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"barbershop/config"
)

const (
	KeyActiveServices = "barbershop:services:active"
	KeyPublicSettings = "barbershop:settings:public"
	KeySlotInterval   = "barbershop:settings:slot_interval"
)

// Cache stores JSON snapshots of read-mostly data. A nil client or a
// non-positive TTL turns every call into a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	return client, nil
}

func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get decodes the cached value into out and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if !c.enabled() {
		return false
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("ошибка чтения из кэша", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(val, out); err != nil {
		c.logger.Warn("поврежденная запись в кэше", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, val any) {
	if !c.enabled() {
		return
	}

	data, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("ошибка сериализации для кэша", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("ошибка записи в кэш", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("ошибка очистки кэша", zap.Strings("keys", keys), zap.Error(err))
	}
}
