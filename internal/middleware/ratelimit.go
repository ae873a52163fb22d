package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window per-IP counter. One storefront page load
// fans out to a handful of API calls, so the limit is per window, not per
// second.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go l.sweep()
	return l
}

func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	b := l.buckets[key]
	if b == nil || now.After(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

func (l *RateLimiter) sweep() {
	tick := time.NewTicker(time.Minute)
	for range tick.C {
		l.mu.Lock()
		now := time.Now()
		for k, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit throttles by client IP. The BOG callback is exempt: a 429
// there reads as a delivery failure on the gateway side and triggers its
// retry storm, which is exactly what the always-200 contract avoids.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/bog-payment/callback") {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "მოთხოვნების ლიმიტი ამოიწურა, სცადეთ მოგვიანებით"})
			return
		}
		c.Next()
	}
}
