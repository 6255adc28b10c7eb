package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Rate limit defaults.
const (
	DefaultRateLimit       = 100
	DefaultRateLimitWindow = time.Minute
	DefaultBurstSize       = 10
	DefaultRateLimitPrefix = "userhub:ratelimit:"

	defaultRateLimitMessage = "Too many requests. Please try again later."
)

// RateLimitStore defines the interface for rate limit storage.
type RateLimitStore interface {
	// Increment increments the counter for the given key and returns the new count.
	// A key without an expiration gets window as its TTL.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)

	// GetTTL returns the remaining TTL for the given key.
	GetTTL(ctx context.Context, key string) (time.Duration, error)
}

// RateLimitConfig holds configuration for the rate limit middleware.
type RateLimitConfig struct {
	// Logger is the structured logger for rate limit events.
	Logger *slog.Logger

	// Store is the rate limit storage backend. Nil disables limiting.
	Store RateLimitStore

	// Limit is the maximum number of requests allowed per window.
	Limit int

	// Window is the time window for rate limiting.
	Window time.Duration

	// BurstSize is added to the regular limit.
	BurstSize int

	// KeyFunc generates the rate limit key. Defaults to the client IP.
	KeyFunc func(c echo.Context) string

	// SkipPaths are paths that don't require rate limiting.
	SkipPaths []string

	// Message is the error message returned when rate limit is exceeded.
	Message string
}

// DefaultRateLimitConfig returns a RateLimitConfig with sensible defaults.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Logger:    slog.Default(),
		Limit:     DefaultRateLimit,
		Window:    DefaultRateLimitWindow,
		BurstSize: DefaultBurstSize,
		SkipPaths: []string{"/health", "/ready", "/health/details", "/metrics"},
		Message:   defaultRateLimitMessage,
	}
}

// RateLimit returns a rate limiting middleware with the given configuration.
// Store failures let the request through.
func RateLimit(config RateLimitConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Limit <= 0 {
		config.Limit = DefaultRateLimit
	}
	if config.Window <= 0 {
		config.Window = DefaultRateLimitWindow
	}
	if config.Message == "" {
		config.Message = defaultRateLimitMessage
	}
	if config.KeyFunc == nil {
		config.KeyFunc = ipKey
	}

	skipPaths := make(map[string]struct{}, len(config.SkipPaths))
	for _, path := range config.SkipPaths {
		skipPaths[path] = struct{}{}
	}

	totalLimit := int64(config.Limit + config.BurstSize)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if _, ok := skipPaths[path]; ok || config.Store == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := config.KeyFunc(c)

			count, err := config.Store.Increment(ctx, key, config.Window)
			if err != nil {
				config.Logger.ErrorContext(ctx, "failed to increment rate limit counter",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
				return next(c)
			}

			remaining := max(totalLimit-count, 0)
			c.Response().Header().Set("X-Ratelimit-Limit", strconv.FormatInt(totalLimit, 10))
			c.Response().Header().Set("X-Ratelimit-Remaining", strconv.FormatInt(remaining, 10))

			ttl, err := config.Store.GetTTL(ctx, key)
			if err == nil && ttl > 0 {
				c.Response().Header().Set("X-Ratelimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
			}

			if count > totalLimit {
				config.Logger.WarnContext(ctx, "rate limit exceeded",
					slog.String("key", key),
					slog.Int64("count", count),
					slog.Int64("limit", totalLimit),
					slog.String("path", path),
					slog.String("remote_ip", c.RealIP()),
				)
				return respondRateLimitError(c, config.Message, ttl)
			}

			return next(c)
		}
	}
}

func ipKey(c echo.Context) string {
	return "ip:" + c.RealIP()
}

// respondRateLimitError sends a rate limit exceeded error response.
func respondRateLimitError(c echo.Context, message string, retryAfter time.Duration) error {
	if retryAfter > 0 {
		c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(retryAfter.Seconds()), 10))
	}

	return c.JSON(http.StatusTooManyRequests, map[string]string{"message": message})
}

// MemoryRateLimitStore is an in-process rate limit store for mock mode and tests.
// Expired entries are swept at most once per window.
type MemoryRateLimitStore struct {
	mu        sync.Mutex
	counts    map[string]*rateLimitEntry
	nextSweep time.Time
}

type rateLimitEntry struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryRateLimitStore creates a new in-memory rate limit store.
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		counts: make(map[string]*rateLimitEntry),
	}
}

// Increment increments the counter for the given key.
func (s *MemoryRateLimitStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if !now.Before(s.nextSweep) {
		s.sweep(now)
		s.nextSweep = now.Add(window)
	}

	entry, exists := s.counts[key]
	if exists && now.Before(entry.expiresAt) {
		entry.count++
		return entry.count, nil
	}

	s.counts[key] = &rateLimitEntry{
		count:     1,
		expiresAt: now.Add(window),
	}
	return 1, nil
}

func (s *MemoryRateLimitStore) sweep(now time.Time) {
	for key, entry := range s.counts {
		if !now.Before(entry.expiresAt) {
			delete(s.counts, key)
		}
	}
}

// GetTTL returns the remaining TTL for the given key.
func (s *MemoryRateLimitStore) GetTTL(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.counts[key]
	if !exists {
		return 0, nil
	}
	return max(time.Until(entry.expiresAt), 0), nil
}

// RedisClient defines the interface for Redis operations needed by rate limiter.
type RedisClient interface {
	Incr(ctx context.Context, key string) (int64, error)
	// ExpireNX sets the TTL only when the key has none.
	ExpireNX(ctx context.Context, key string, expiration time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RedisRateLimitStore is a Redis-based rate limit store shared across instances.
type RedisRateLimitStore struct {
	client    RedisClient
	keyPrefix string
}

// NewRedisRateLimitStore creates a new Redis-based rate limit store.
func NewRedisRateLimitStore(client RedisClient, keyPrefix string) *RedisRateLimitStore {
	if keyPrefix == "" {
		keyPrefix = DefaultRateLimitPrefix
	}
	return &RedisRateLimitStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Increment increments the counter for the given key.
func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.keyPrefix + key

	count, err := s.client.Incr(ctx, fullKey)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	// re-arm a missing TTL on every hit
	if expireErr := s.client.ExpireNX(ctx, fullKey, window); expireErr != nil {
		return count, fmt.Errorf("failed to set expiration: %w", expireErr)
	}

	return count, nil
}

// GetTTL returns the remaining TTL for the given key.
func (s *RedisRateLimitStore) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return s.client.TTL(ctx, s.keyPrefix+key)
}

// GoRedisClient adapts *redis.Client to RedisClient.
type GoRedisClient struct {
	client *redis.Client
}

// NewGoRedisClient wraps client.
func NewGoRedisClient(client *redis.Client) *GoRedisClient {
	return &GoRedisClient{client: client}
}

// Incr implements RedisClient.
func (g *GoRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return g.client.Incr(ctx, key).Result()
}

// ExpireNX implements RedisClient.
func (g *GoRedisClient) ExpireNX(ctx context.Context, key string, expiration time.Duration) error {
	return g.client.ExpireNX(ctx, key, expiration).Err()
}

// TTL implements RedisClient.
func (g *GoRedisClient) TTL(ctx context.Context, key string) (time.Duration, error) {
	return g.client.TTL(ctx, key).Result()
}
