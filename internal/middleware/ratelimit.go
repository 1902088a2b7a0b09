package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
)

// RateLimiter hands out one token bucket per client IP. Buckets idle for
// longer than idleTTL are removed by Janitor.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu      sync.Mutex
	clients map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requests per window for each IP, all of them
// usable in a burst.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	return &RateLimiter{
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		idleTTL: 3 * window,
		clients: make(map[string]*visitor),
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.clients[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.clients {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.clients, ip)
		}
	}
}

// Janitor evicts idle buckets until ctx is cancelled.
func (rl *RateLimiter) Janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.sweep(now)
		}
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Abort()
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Muitas requisições. Aguarde um instante.")
			return
		}
		c.Next()
	}
}
