package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit  int
	Window time.Duration
	// Key prefix for Redis, e.g. "jobportal:rl:ip:"
	KeyPrefix string
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
}

// GlobalRateLimitConfig applies to every /api route.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "jobportal:rl:ip:"}
}

// AuthRateLimitConfig is the strict limit for register and login.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "jobportal:rl:auth:"}
}

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RateLimiter counts requests in Redis when a client is configured. Without
// Redis, or when Redis errors, it falls back to a per-key token bucket held
// in process.
type RateLimiter struct {
	client    *goredis.Client
	config    RateLimitConfig
	secLogger *security.SecurityLogger

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(client *goredis.Client, config RateLimitConfig, secLogger *security.SecurityLogger) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if secLogger == nil {
		secLogger = security.NewNopSecurityLogger()
	}
	return &RateLimiter{
		client:    client,
		config:    config,
		secLogger: secLogger,
		buckets:   make(map[string]*bucket),
	}
}

// Handler returns the gin middleware. A non-positive Limit disables it.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.config.Limit <= 0 {
			c.Next()
			return
		}

		key := rl.config.KeyPrefix + rl.config.KeyFunc(c)
		allowed, remaining, retryAfter := rl.allow(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			secs := int(retryAfter.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			rl.secLogger.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), response.RequestID(c), c.FullPath())
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, int, time.Duration) {
	if rl.client != nil {
		count, ttl, err := rl.checkRedis(ctx, key)
		if err == nil {
			remaining := rl.config.Limit - count
			if remaining < 0 {
				remaining = 0
			}
			return count <= rl.config.Limit, remaining, ttl
		}
		logger.Log.Warn("Rate limit falling back to in-memory", "error", err)
	}
	return rl.checkInMemory(key)
}

// checkRedis checks rate limit using Redis with atomic Lua script
func (rl *RateLimiter) checkRedis(ctx context.Context, key string) (int, time.Duration, error) {
	result, err := rl.client.Eval(ctx, rateLimitLuaScript, []string{key}, int(rl.config.Window.Seconds())).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, 0, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	return int(count), time.Duration(ttl) * time.Second, nil
}

func (rl *RateLimiter) checkInMemory(key string) (bool, int, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		every := rl.config.Window / time.Duration(rl.config.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), rl.config.Limit)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	rl.evictIdle(now)

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, delay
	}
	return true, int(b.limiter.TokensAt(now)), 0
}

// evictIdle drops buckets unused for two windows. Caller holds rl.mu.
func (rl *RateLimiter) evictIdle(now time.Time) {
	if len(rl.buckets) < 1024 {
		return
	}
	for k, b := range rl.buckets {
		if now.Sub(b.lastSeen) > 2*rl.config.Window {
			delete(rl.buckets, k)
		}
	}
}
