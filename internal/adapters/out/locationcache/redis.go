package locationcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "crowddelivery:location:"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
}

// RedisConfig selects the Redis instance holding positions.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache keeps positions in Redis so every process of the deployment sees the
// same last known location. Each position is one key with a TTL.
type RedisCache struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

var _ ports.LocationCache = (*RedisCache)(nil)

// NewRedisCache connects to Redis and verifies connectivity.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	raw := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	c := newRedisCache(raw, cfg.TTL)
	c.raw = raw
	return c, nil
}

func newRedisCache(store cmdable, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{store: store, ttl: ttl}
}

func (c *RedisCache) Put(ctx context.Context, position ports.Position) error {
	raw, err := json.Marshal(position)
	if err != nil {
		return fmt.Errorf("encode position: %w", err)
	}
	if err := c.store.Set(ctx, key(position.UserID), raw, c.ttl).Err(); err != nil {
		return errs.NewUnavailableError("location cache", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, userID int64) (ports.Position, error) {
	raw, err := c.store.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Position{}, errs.NewObjectNotFoundError("location", userID)
	}
	if err != nil {
		return ports.Position{}, errs.NewUnavailableError("location cache", err)
	}

	var p ports.Position
	if err := json.Unmarshal(raw, &p); err != nil {
		return ports.Position{}, fmt.Errorf("decode position of user %d: %w", userID, err)
	}
	return p, nil
}

// Ping reports whether Redis is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}
