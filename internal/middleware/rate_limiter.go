package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"investigacion/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ── Per-IP token buckets ──────────────────────────────────────────────────────

const purgeInterval = 5 * time.Minute

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiter keeps one token bucket per client IP. A bucket refills at
// perMinute/60 tokens per second with a burst of perMinute.
type IPLimiter struct {
	mu        sync.Mutex
	entries   map[string]*ipEntry
	limit     rate.Limit
	burst     int
	nextPurge time.Time
	now       func() time.Time
}

func NewIPLimiter(perMinute int) *IPLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &IPLimiter{
		entries: make(map[string]*ipEntry),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   perMinute,
		now:     time.Now,
	}
}

// Allow consumes one token for ip.
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextPurge) {
		l.purgeLocked(now)
		l.nextPurge = now.Add(purgeInterval)
	}

	entry, ok := l.entries[ip]
	if !ok {
		entry = &ipEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// purgeLocked drops IPs idle for longer than purgeInterval; their buckets are full anyway.
func (l *IPLimiter) purgeLocked(now time.Time) {
	purged := 0
	for ip, e := range l.entries {
		if now.Sub(e.lastSeen) > purgeInterval {
			delete(l.entries, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.entries)).Msg("rate limiter entries purged")
	}
}

// Middleware rejects requests over the limit with 429 and message.
func (l *IPLimiter) Middleware(message string) gin.HandlerFunc {
	intervalo := time.Duration(float64(time.Second) / float64(l.limit))
	retryAfter := strconv.Itoa(int(intervalo.Seconds()) + 1)
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(message))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP API limiter.
func RateLimiter(perMinute int) gin.HandlerFunc {
	return NewIPLimiter(perMinute).Middleware("Demasiadas solicitudes. Intente nuevamente en un momento.")
}

// LoginRateLimiter limits login attempts per IP.
func LoginRateLimiter(perMinute int) gin.HandlerFunc {
	return NewIPLimiter(perMinute).Middleware("Demasiados intentos de inicio de sesión. Intente en 1 minuto.")
}
