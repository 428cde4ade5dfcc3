package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterTTL             = 10 * time.Minute
)

// RateLimiter keeps one token bucket per caller.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	perMinute int
	burst     int
	stopCh    chan struct{}
	stopOnce  sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	rl := &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		perMinute: perMinute,
		burst:     burst,
		stopCh:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow consumes a token for key and reports the tokens left.
func (r *RateLimiter) Allow(key string) (bool, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(float64(r.perMinute)/60.0), r.burst)}
		r.limiters[key] = e
	}
	e.lastSeen = time.Now()
	allowed := e.limiter.Allow()
	left := int(e.limiter.Tokens())
	if left < 0 {
		left = 0
	}
	return allowed, left
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			for k, e := range r.limiters {
				if time.Since(e.lastSeen) > limiterTTL {
					delete(r.limiters, k)
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

func (r *RateLimiter) Stop() { r.stopOnce.Do(func() { close(r.stopCh) }) }

// RateLimit throttles per authenticated user, falling back to the client IP.
func RateLimit(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if a, ok := ActorFrom(c); ok {
				key = a.UserID
			}
			allowed, left := rl.Allow(key)
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(rl.perMinute))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(left))
			if !allowed {
				retry := int((time.Minute / time.Duration(rl.perMinute)).Seconds())
				if retry < 1 {
					retry = 1
				}
				h.Set("Retry-After", strconv.Itoa(retry))
				log.Warn().Str("key", key).Str("path", c.Path()).Msg("rate limit exceeded")
				return abort(c, http.StatusTooManyRequests, "too many requests, retry after "+strconv.Itoa(retry)+" seconds")
			}
			return next(c)
		}
	}
}
