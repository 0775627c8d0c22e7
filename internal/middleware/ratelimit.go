package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		visitors: make(map[string]*visitor),
	}
}

func (l *IPRateLimiter) Allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	// limpeza preguiçosa
	for k, other := range l.visitors {
		if now.Sub(other.lastSeen) > limiterIdleTTL {
			delete(l.visitors, k)
		}
	}

	return v.limiter.AllowN(now, 1)
}

// RateLimit rejects with 429 once an IP spends its bucket. ClientIP honours
// X-Forwarded-For from trusted proxies.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error_code": "rate_limited",
				"message":    "Muitas tentativas. Aguarde um instante.",
			})
			return
		}
		c.Next()
	}
}
