package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smakkapati-repo/amzon-bedrock-agentcore-bank-analytics/config"
)

// RateLimiter counts requests per client IP over a fixed window. The
// window resets wholesale rather than sliding; good enough to keep a
// single misbehaving dashboard client from hammering EDGAR and the
// agent runtime through us.
type RateLimiter struct {
	mu        sync.Mutex
	counts    map[string]int
	lastReset time.Time
	limit     int
	window    time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counts:    make(map[string]int),
		lastReset: time.Now(),
		limit:     limit,
		window:    window,
	}
}

// Allow records a request for the client and reports whether it is
// within the limit.
func (l *RateLimiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastReset) > l.window {
		l.counts = make(map[string]int)
		l.lastReset = time.Now()
	}

	if l.counts[clientIP] >= l.limit {
		return false
	}
	l.counts[clientIP]++
	return true
}

// RateLimit limits requests per client IP using the server config
// bounds (requests per window, window length in seconds).
func RateLimit(cfg *config.ServerConfig) gin.HandlerFunc {
	limiter := NewRateLimiter(cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindowSeconds)*time.Second)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiter.Allow(clientIP) {
			slog.Warn("rate limit exceeded",
				"client_ip", clientIP,
				"request_id", GetRequestID(c),
			)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
