package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"coachfit_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService fronts Redis for read-heavy product views.
type CacheService struct {
	logger *gecho.Logger
	client *redis.Client
	cfg    *structs.CacheConfig
}

var (
	redisClient     *redis.Client
	redisClientOnce sync.Once
)

func getRedisClient(cfg *structs.CacheConfig) *redis.Client {
	redisClientOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:            cfg.Address,
			Username:        cfg.Username,
			Password:        cfg.Password,
			DB:              cfg.DB,
			PoolSize:        cfg.PoolSize,
			MinIdleConns:    cfg.MinIdleConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			PoolTimeout:     cfg.PoolTimeout,
			ConnMaxIdleTime: cfg.IdleTimeout,
			DialTimeout:     cfg.DialTimeout,
			ReadTimeout:     cfg.ReadTimeout,
			WriteTimeout:    cfg.WriteTimeout,
			MaxRetries:      cfg.MaxRetries,
			MinRetryBackoff: cfg.MinRetryBackoff,
			MaxRetryBackoff: cfg.MaxRetryBackoff,
		})
	})
	return redisClient
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		client: getRedisClient(cfg.Cache),
		cfg:    cfg.Cache,
	}
}

func productViewKey(activityID uuid.UUID) string {
	return fmt.Sprintf("product:view:%s", activityID)
}

// GetProductView returns the cached view for an activity, or (nil, nil) on a
// cache miss. Redis failures are reported as errors; callers degrade to the
// database.
func (cs *CacheService) GetProductView(ctx context.Context, activityID uuid.UUID) (*structs.ProductView, error) {
	var raw string
	err := cs.withRetry(ctx, "get", func() error {
		var getErr error
		raw, getErr = cs.client.Get(ctx, productViewKey(activityID)).Result()
		return getErr
	})
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read product view from cache: %w", err)
	}

	var view structs.ProductView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		// A corrupt entry is treated as a miss; it gets overwritten on
		// the next successful read-through.
		cs.logger.Warn("Discarding corrupt cache entry",
			gecho.Field("key", productViewKey(activityID)),
			gecho.Field("error", err),
		)
		return nil, nil
	}
	return &view, nil
}

// SetProductView stores the assembled view with the configured TTL.
func (cs *CacheService) SetProductView(ctx context.Context, view *structs.ProductView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal product view for cache: %w", err)
	}

	return cs.withRetry(ctx, "set", func() error {
		return cs.client.Set(ctx, productViewKey(view.ID), payload, cs.cfg.ProductViewTTL).Err()
	})
}

// InvalidateProductView drops the cached view after a write.
func (cs *CacheService) InvalidateProductView(ctx context.Context, activityID uuid.UUID) error {
	return cs.withRetry(ctx, "del", func() error {
		return cs.client.Del(ctx, productViewKey(activityID)).Err()
	})
}

// IncrementRateLimit bumps the request counter for an (ip, endpoint) pair and
// returns the count within the current window. The window TTL is set on the
// first hit only.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	count, err := cs.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := cs.client.Expire(ctx, key, window).Err(); err != nil {
			return int(count), fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return int(count), nil
}

// Health reports round-trip latency to Redis.
func (cs *CacheService) Health(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := cs.client.Ping(ctx).Err(); err != nil {
		return 0, fmt.Errorf("redis ping failed: %w", err)
	}
	return time.Since(start), nil
}

const (
	cacheRetryAttempts = 3
	cacheRetryBase     = 50 * time.Millisecond
)

// withRetry reissues transient cache operations with jittered backoff.
// redis.Nil is a semantic miss, never retried.
func (cs *CacheService) withRetry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= cacheRetryAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil || errors.Is(lastErr, redis.Nil) {
			return lastErr
		}
		if attempt == cacheRetryAttempts {
			break
		}

		delay := cacheRetryBase * time.Duration(1<<(attempt-1))
		delay += time.Duration(rand.Int63n(int64(cacheRetryBase)))
		cs.logger.Debug("Retrying cache operation",
			gecho.Field("operation", op),
			gecho.Field("attempt", attempt),
			gecho.Field("delay", delay.String()),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}
