package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"library-api/internal/shared/response"
	"library-api/pkg/cache"
)

// RateLimitMessage is returned with 429
const RateLimitMessage = "Trop de requêtes depuis cette IP, veuillez réessayer plus tard."

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter counts requests per client IP in a fixed window shared
// through the cache. When the cache is missing or failing it falls back
// to an in-process token bucket with the same average rate.
type RateLimiter struct {
	store  cache.Cache
	max    int
	window time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(store cache.Cache, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:    store,
		max:      max,
		window:   window,
		visitors: make(map[string]*visitor),
		lastGC:   time.Now(),
	}
}

// Middleware enforces the limit and sets the RateLimit-* headers
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ClientIP(c)

		allowed, remaining, reset := rl.hit(c.Request.Context(), ip)

		c.Header("RateLimit-Limit", strconv.Itoa(rl.max))
		c.Header("RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("RateLimit-Reset", strconv.Itoa(int(math.Ceil(reset.Seconds()))))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(reset.Seconds()))))
			response.TooManyRequests(c, RateLimitMessage)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) hit(ctx context.Context, ip string) (bool, int, time.Duration) {
	if rl.store != nil {
		count, ttl, err := cache.HitWindow(ctx, rl.store, rateLimitKeyPrefix+ip, rl.window)
		if err == nil {
			remaining := rl.max - int(count)
			if remaining < 0 {
				remaining = 0
			}
			return count <= int64(rl.max), remaining, ttl
		}
		log.Warn().Err(err).Msg("rate limit store unavailable, using local limiter")
	}

	return rl.hitLocal(ip)
}

func (rl *RateLimiter) hitLocal(ip string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.collect(now)

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.max)), rl.max)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, delay
	}

	remaining := int(v.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, rl.window
}

// collect drops visitors idle for a full window, at most once per window
func (rl *RateLimiter) collect(now time.Time) {
	if now.Sub(rl.lastGC) < rl.window {
		return
	}
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.window {
			delete(rl.visitors, ip)
		}
	}
	rl.lastGC = now
}
