// README: Per-client token-bucket rate limiting middleware.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// rateLimiterStore holds a map of client IPs to their rate limiters. Entries
// for clients that go quiet are swept so the map stays bounded.
type rateLimiterStore struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	sweeper  sync.Once
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var limiterStore = &rateLimiterStore{
	limiters: make(map[string]*clientLimiter),
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.limiters[ip]
	if !exists {
		// 60 requests per minute with a burst of 10; chat turns are slow
		// anyway because of the provider calls behind them.
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/60), 10)}
		s.limiters[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

func (s *rateLimiterStore) sweep(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, c := range s.limiters {
		if c.lastSeen.Before(cutoff) {
			delete(s.limiters, ip)
		}
	}
}

func (s *rateLimiterStore) startSweeper() {
	s.sweeper.Do(func() {
		go func() {
			ticker := time.NewTicker(limiterIdleTTL)
			defer ticker.Stop()
			for range ticker.C {
				s.sweep(limiterIdleTTL)
			}
		}()
	})
}

// RateLimit limits requests per client IP.
func RateLimit() gin.HandlerFunc {
	limiterStore.startSweeper()
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiterStore.getLimiter(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, try again later"})
			return
		}
		c.Next()
	}
}
