package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes the shared Redis client used by the rate
// limiters. Without an addr, or if the ping fails, the limiters fall back to
// the in-process fixed window so a Redis outage never takes the API down.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
	}
}

// local fixed-window fallback, per identifier
type windowInfo struct {
	start time.Time
	count int
}

var (
	localMu        sync.Mutex
	localWindows   = make(map[string]*windowInfo)
	localLastSweep time.Time
)

func localAllow(ident string, maxRequests int, window time.Duration) bool {
	localMu.Lock()
	defer localMu.Unlock()

	now := time.Now()

	// drop expired windows so the fallback map cannot grow one entry per
	// distinct client forever
	if now.Sub(localLastSweep) > window {
		for k, wi := range localWindows {
			if now.Sub(wi.start) > window {
				delete(localWindows, k)
			}
		}
		localLastSweep = now
	}

	wi, ok := localWindows[ident]
	if !ok || now.Sub(wi.start) > window {
		localWindows[ident] = &windowInfo{start: now, count: 1}
		return true
	}
	wi.count++
	return wi.count <= maxRequests
}

func redisAllow(ctx context.Context, key string, maxRequests int, window time.Duration) (allowed, ok bool) {
	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, false
	}
	if val == 1 {
		if err := redisClient.Expire(ctx, key, window).Err(); err != nil {
			// a counter without a TTL never resets; drop it and let the
			// caller fall back to the local window
			_ = redisClient.Del(ctx, key).Err()
			return false, false
		}
	}
	return val <= int64(maxRequests), true
}

// RateLimit limits requests per client IP within a fixed window, backed by
// Redis when configured and by process memory otherwise.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := c.ClientIP()
		limitOrAbort(c, "ip:"+ident, maxRequests, window, c.FullPath())
	}
}

// UserRateLimit limits requests per authenticated user, keyed on the JWT
// user_id. Requires the JWT middleware earlier in the chain. Used on the
// click endpoint so one account cannot hammer the ledger.
func UserRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uidVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, ok := uidVal.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}
		limitOrAbort(c, "user:"+strconv.FormatInt(userID, 10), maxRequests, window, "user:"+c.FullPath())
	}
}

func limitOrAbort(c *gin.Context, ident string, maxRequests int, window time.Duration, endpoint string) {
	key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ident

	var allowed bool
	if redisClient != nil {
		var ok bool
		allowed, ok = redisAllow(c.Request.Context(), key, maxRequests, window)
		if !ok {
			// redis hiccup: fall back to the local window rather than open
			allowed = localAllow(key, maxRequests, window)
		}
	} else {
		allowed = localAllow(key, maxRequests, window)
	}

	if !allowed {
		RLBlocked.WithLabelValues(endpoint).Inc()
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "rate limit exceeded",
			"retry_after": int(window.Seconds()),
		})
		return
	}

	RLRequests.WithLabelValues(endpoint).Inc()
	c.Next()
}
