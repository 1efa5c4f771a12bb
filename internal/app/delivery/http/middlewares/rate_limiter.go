package middlewares

import (
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// GlobalRateLimit is the per-IP limit applied to every route.
func (m *Middlewares) GlobalRateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Duration(max(m.InternalConfig.App.MaxTimeRequestsPerSeconds, 1))*time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}

// RateLimiter is a token bucket per client IP. A client that drains its
// bucket is blocked for blockTime.
type RateLimiter struct {
	log       *zap.Logger
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	blockTime time.Duration
	now       func() time.Time
}

func NewRateLimiter(logger *zap.Logger, perSecond, burst int, blockTime time.Duration) *RateLimiter {
	if burst <= 0 {
		burst = perSecond
	}
	return &RateLimiter{
		log:       logger,
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		limit:     rate.Limit(perSecond),
		burst:     burst,
		blockTime: blockTime,
		now:       time.Now,
	}
}

// GatewayRateLimiter guards the payment gateway endpoints.
func (m *Middlewares) GatewayRateLimiter() *RateLimiter {
	app := m.InternalConfig.App
	return NewRateLimiter(m.Log, app.GatewayRateLimitPerSecond, app.GatewayRateLimitBurst, 10*time.Second)
}

func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if blockedUntil, found := rl.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false, blockedUntil.Sub(now)
		}
		delete(rl.blocked, ip)
	}

	limiter, exists := rl.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[ip] = limiter
	}

	if !limiter.AllowN(now, 1) {
		rl.blocked[ip] = now.Add(rl.blockTime)
		return false, rl.blockTime
	}
	return true, 0
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r)
		ok, retryAfter := rl.allow(ip)
		if !ok {
			utils.LogSecurityEvent(rl.log, "gateway_rate_limited", utils.GetRequestID(r.Context()), "medium",
				zap.String("ip", ip),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds()+0.5)))
			utils.BuildErrorResponse(rl.log, w, exceptions.ErrTooManyRequests(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
