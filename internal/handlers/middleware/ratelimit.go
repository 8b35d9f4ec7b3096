// internal/handlers/middleware/ratelimit.go
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's limiter survives without requests.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// clientLimiters holds one token bucket per client IP. Idle buckets are
// swept on the request path at most once per limiterIdleTTL.
type clientLimiters struct {
	limiters  sync.Map
	every     rate.Limit
	burst     int
	lastSweep atomic.Int64
}

func (c *clientLimiters) get(ip string, now time.Time) *rate.Limiter {
	val, _ := c.limiters.LoadOrStore(ip, &clientLimiter{limiter: rate.NewLimiter(c.every, c.burst)})
	cl := val.(*clientLimiter)
	cl.lastSeen.Store(now.UnixNano())

	last := c.lastSweep.Load()
	if now.UnixNano()-last > int64(limiterIdleTTL) && c.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		c.sweep(now)
	}
	return cl.limiter
}

func (c *clientLimiters) sweep(now time.Time) {
	c.limiters.Range(func(key, value interface{}) bool {
		if now.Sub(time.Unix(0, value.(*clientLimiter).lastSeen.Load())) > limiterIdleTTL {
			c.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit allows each client IP a burst of requests per duration. A
// rejected request gets 429 and a Retry-After of the seconds until the next
// token.
func RateLimit(requests int, duration time.Duration) func(http.Handler) http.Handler {
	limiters := &clientLimiters{
		every: rate.Every(duration / time.Duration(requests)),
		burst: requests,
	}
	limiters.lastSweep.Store(time.Now().UnixNano())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			limiter := limiters.get(getClientIP(r), now)

			res := limiter.ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				retry := int(math.Ceil(delay.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
