package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Limiter decides whether a client may make another request.
// Returns: allowed, remaining requests, reset time, error
type Limiter interface {
	IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error)
	Config() RateLimitConfig
}

// RateLimiter is a fixed-window limiter shared through Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
	}
}

// Config returns the limiter settings
func (rl *RateLimiter) Config() RateLimitConfig {
	return rl.config
}

// windowKey returns the Redis key counting requests for key in the current window
func (rl *RateLimiter) windowKey(key string, now time.Time) (string, time.Time) {
	windowStart := now.Truncate(rl.config.Window)
	return fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix()), windowStart.Add(rl.config.Window)
}

// IsAllowed checks if a request from the given client is allowed
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey, resetTime := rl.windowKey(key, rl.now())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.config.Limit, remaining, resetTime, nil
}

// LocalRateLimiter keeps one token bucket per client in memory. It is used
// when no Redis server is configured.
type LocalRateLimiter struct {
	config  RateLimitConfig
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewLocalRateLimiter creates an in-process limiter refilling Limit tokens per Window
func NewLocalRateLimiter(config RateLimitConfig) *LocalRateLimiter {
	return &LocalRateLimiter{
		config:  config,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Config returns the limiter settings
func (l *LocalRateLimiter) Config() RateLimitConfig {
	return l.config
}

// IsAllowed takes a token from the client's bucket
func (l *LocalRateLimiter) IsAllowed(_ context.Context, key string) (bool, int, time.Time, error) {
	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		every := l.config.Window / time.Duration(l.config.Limit)
		bucket = rate.NewLimiter(rate.Every(every), l.config.Limit)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	allowed := bucket.Allow()
	remaining := int(bucket.Tokens())
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, time.Now().Add(l.config.Window), nil
}

// NewRecipeMutationRateLimiter limits recipe creation, edits and deletes
// per client. Redis is used when a client is given.
func NewRecipeMutationRateLimiter(redisClient *redis.Client, limit int, window time.Duration) Limiter {
	cfg := RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_mutation",
	}
	if redisClient != nil {
		return NewRateLimiter(redisClient, cfg)
	}
	return NewLocalRateLimiter(cfg)
}

// RateLimitMiddleware returns a Gin middleware that enforces limiter per client IP
func RateLimitMiddleware(limiter Limiter) gin.HandlerFunc {
	cfg := limiter.Config()
	return func(c *gin.Context) {
		allowed, remaining, resetTime, err := limiter.IsAllowed(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Log error but don't fail the request
			log.Printf("[RateLimit] check failed for %s: %v", c.ClientIP(), err)
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rateLimitRejects.Inc()
			retryAfter := int(time.Until(resetTime).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Data(http.StatusTooManyRequests, "text/plain; charset=utf-8",
				[]byte(fmt.Sprintf("Too many changes: the limit is %d per %v. Please try again later.", cfg.Limit, cfg.Window)))
			c.Abort()
			return
		}

		c.Next()
	}
}
