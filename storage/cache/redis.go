package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"ridedispatch/config"
	"ridedispatch/pkg/logger"
	"ridedispatch/storage"
)

const routeKeyPrefix = "route:distance:"

// RouteCache keeps routed distances so repeated quotes skip the directions API.
type RouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*RouteCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("failed to connect Redis", logger.Error(err))
		_ = rdb.Close()
		return nil, err
	}
	log.Info("Redis connected")
	return &RouteCache{rdb: rdb, ttl: cfg.RouteCacheTTL}, nil
}

var _ storage.IRouteCache = (*RouteCache)(nil)

func (c *RouteCache) GetDistance(ctx context.Context, key string) (int, bool, error) {
	val, err := c.rdb.Get(ctx, routeKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	meters, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return meters, true, nil
}

func (c *RouteCache) SetDistance(ctx context.Context, key string, meters int) error {
	return c.rdb.Set(ctx, routeKeyPrefix+key, meters, c.ttl).Err()
}

func (c *RouteCache) Close() error {
	return c.rdb.Close()
}
