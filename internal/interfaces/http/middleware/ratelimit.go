package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parcelcart/backend/internal/interfaces/http/dto"
)

// RateLimiter counts requests per key in fixed windows. It guards the quote
// endpoints, which sign form tokens and price on every call.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*fixedWindow

	stop     chan struct{}
	stopOnce sync.Once
}

type fixedWindow struct {
	start time.Time
	used  int
}

// decision is the outcome of one take.
type decision struct {
	allowed   bool
	remaining int
	resetIn   time.Duration
}

// NewRateLimiter allows limit requests per key per window. Idle keys are
// evicted in the background until Stop.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]*fixedWindow),
		stop:    make(chan struct{}),
	}
	go rl.evictLoop(2 * window)
	return rl
}

// Stop ends background eviction.
func (rl *RateLimiter) Stop() { rl.stopOnce.Do(func() { close(rl.stop) }) }

func (rl *RateLimiter) evictLoop(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-t.C:
			rl.evictExpired()
		}
	}
}

func (rl *RateLimiter) evictExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-2 * rl.window)
	for key, w := range rl.windows {
		if w.start.Before(cutoff) {
			delete(rl.windows, key)
		}
	}
}

func (rl *RateLimiter) take(key string) decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.window {
		w = &fixedWindow{start: now}
		rl.windows[key] = w
	}
	resetIn := w.start.Add(rl.window).Sub(now)
	if w.used >= rl.limit {
		return decision{resetIn: resetIn}
	}
	w.used++
	return decision{allowed: true, remaining: rl.limit - w.used, resetIn: resetIn}
}

// Allow consumes one request for key.
func (rl *RateLimiter) Allow(key string) bool { return rl.take(key).allowed }

// Remaining is how many requests key may still make in its current window.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	w, ok := rl.windows[key]
	if !ok || rl.now().Sub(w.start) >= rl.window {
		return rl.limit
	}
	return rl.limit - w.used
}

// RateLimit limits by client IP.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, (*gin.Context).ClientIP)
}

// RateLimitByKey limits by keyFunc. Rejected requests get 429 with
// Retry-After set to the seconds left in the window.
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := limiter.take(keyFunc(c))
		reset := strconv.Itoa(int(math.Ceil(d.resetIn.Seconds())))

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.remaining))
		c.Header("X-RateLimit-Reset", reset)
		if !d.allowed {
			c.Header("Retry-After", reset)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
