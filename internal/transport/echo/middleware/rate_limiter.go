package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	evictInterval = 5 * time.Minute
	maxIdleAge    = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// RateLimiter implements token bucket rate limiting per client IP. It runs
// before authentication, where no principal is available yet, so buckets are
// keyed by IP alone. Buckets idle past maxIdleAge are evicted in the
// background so the map does not grow with every client ever seen.
type RateLimiter struct {
	limiters sync.Map // ip -> *clientLimiter
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter allowing requestsPerSecond sustained
// requests per client with the given burst size.
func NewRateLimiter(requestsPerSecond int, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:  rate.Limit(requestsPerSecond),
		burst: burst,
		stop:  make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

// NewGlobalRateLimiter creates the limiter applied to general API traffic.
func NewGlobalRateLimiter() *RateLimiter {
	return NewRateLimiter(100, 200) // 100 req/sec, burst of 200
}

// Stop ends the background eviction loop.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle(time.Now())
		case <-rl.stop:
			return
		}
	}
}

// evictIdle drops buckets not seen since maxIdleAge before now. An evicted
// client that returns simply gets a fresh full bucket.
func (rl *RateLimiter) evictIdle(now time.Time) {
	cutoff := now.Add(-maxIdleAge).UnixNano()
	rl.limiters.Range(func(key, value interface{}) bool {
		if value.(*clientLimiter).lastSeen.Load() < cutoff {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// getLimiter gets or creates the rate limiter for the given key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	entry, exists := rl.limiters.Load(key)
	if !exists {
		entry, _ = rl.limiters.LoadOrStore(key, &clientLimiter{
			limiter: rate.NewLimiter(rl.rate, rl.burst),
		})
	}
	cl := entry.(*clientLimiter)
	cl.lastSeen.Store(time.Now().UnixNano())
	return cl.limiter
}

// Allow checks if a request should be allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware returns an Echo middleware function enforcing the limit per
// client IP.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := rl.getLimiter("ip:" + c.RealIP())

			if !limiter.Allow() {
				c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.burst))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("Retry-After", "1")

				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}

			tokens := int(limiter.Tokens())
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.burst))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", tokens))

			return next(c)
		}
	}
}
