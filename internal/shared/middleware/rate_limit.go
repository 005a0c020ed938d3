package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"library-backend/internal/shared/response"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const rateLimitMessage = "too many requests, please try again later"

// RateLimit bounds inbound request rate per client IP with a fixed window
// counter kept in the cache layer, so the limit holds across replicas.
// The first increment of a window arms the key's TTL. A broken counter
// store fails open: the limiter must not take the API down with it.
func RateLimit(store cache.Cache, window time.Duration, max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()

		n, err := store.Increment(c.Request.Context(), key)
		if err != nil {
			logger.Error("rate limiter store unavailable", err)
			c.Next()
			return
		}

		if n == 1 {
			if err := store.Expire(c.Request.Context(), key, window); err != nil {
				logger.Error("rate limiter expire failed", err)
			}
		}

		if n > int64(max) {
			response.TooManyRequests(c, rateLimitMessage)
			c.Abort()
			return
		}

		c.Next()
	}
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const sweepInterval = time.Minute

// RateLimitInProcess is the redis-less variant: a token bucket per client
// IP sized to admit max requests per window. Stale IP entries are swept
// lazily from inside the handler, so constructing a limiter never spawns
// a goroutine and the map cannot grow without bound.
func RateLimitInProcess(window time.Duration, max int) gin.HandlerFunc {
	var (
		mu        sync.Mutex
		limiters  = make(map[string]*ipLimiter)
		lastSweep = time.Now()
	)

	perSecond := rate.Limit(float64(max) / window.Seconds())

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		if time.Since(lastSweep) > sweepInterval {
			for cand, l := range limiters {
				if time.Since(l.lastSeen) > 2*window {
					delete(limiters, cand)
				}
			}
			lastSweep = time.Now()
		}

		l, ok := limiters[ip]
		if !ok {
			l = &ipLimiter{limiter: rate.NewLimiter(perSecond, max)}
			limiters[ip] = l
		}
		l.lastSeen = time.Now()
		allowed := l.limiter.Allow()
		mu.Unlock()

		if !allowed {
			response.TooManyRequests(c, rateLimitMessage)
			c.Abort()
			return
		}

		c.Next()
	}
}
