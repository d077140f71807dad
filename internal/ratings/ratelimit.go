package ratings

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"DiningAPI/internal/common"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRetryAfter         = "Retry-After"

	LimiterCleanupInterval = 5 * time.Minute
	LimiterIdleTTL         = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles rating submissions per client IP
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*clientLimiter
	rps    rate.Limit
	burst  int

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRateLimiter creates a limiter allowing rps requests per second per client with the given burst.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limits: make(map[string]*clientLimiter),
		rps:    rate.Limit(rps),
		burst:  burst,
		stopCh: make(chan struct{}),
	}
}

// Start runs the background cleanup of idle client limiters
func (rl *RateLimiter) Start(ctx context.Context) {
	rl.wg.Add(1)
	go func() {
		defer rl.wg.Done()
		rl.cleanupTicker(ctx)
	}()
}

// Stop gracefully stops the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
	rl.wg.Wait()
}

func (rl *RateLimiter) cleanupTicker(ctx context.Context) {
	ticker := time.NewTicker(LimiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-rl.stopCh:
			return
		case now := <-ticker.C:
			rl.Cleanup(now)
		}
	}
}

// Cleanup forgets clients idle for longer than LimiterIdleTTL and returns how many were removed.
func (rl *RateLimiter) Cleanup(now time.Time) int {
	cutoff := now.Add(-LimiterIdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for key, cl := range rl.limits {
		if cl.lastSeen.Before(cutoff) {
			delete(rl.limits, key)
			removed++
		}
	}
	return removed
}

// Clients returns the number of tracked client limiters
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limits)
}

// getLimiter gets or creates a limiter for the given key
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if cl, ok := rl.limits[key]; ok {
		cl.lastSeen = now
		return cl.limiter
	}
	cl := &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst), lastSeen: now}
	rl.limits[key] = cl
	return cl.limiter
}

// Allow checks if a request is allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	if rl.rps <= 0 {
		return true
	}
	return rl.getLimiter(canonicalKey(key)).Allow()
}

// Middleware rejects clients over their rate with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rps <= 0 {
			c.Next()
			return
		}

		limiter := rl.getLimiter(canonicalKey(c.ClientIP()))
		allowed := limiter.Allow()
		c.Header(HeaderRateLimitLimit, strconv.FormatFloat(float64(rl.rps), 'f', -1, 64))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(max(0, int(limiter.Tokens()))))
		if !allowed {
			c.Header(HeaderRetryAfter, "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.CreateErrorResponse(c, []string{"rate limit exceeded"}))
			return
		}
		c.Next()
	}
}

// canonicalKey folds the textual forms of one address ("::ffff:10.0.0.1", "10.0.0.1") together
func canonicalKey(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}
	return parsed.To16().String()
}

//   This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
