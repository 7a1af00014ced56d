package worker

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ppiankov/ghostwriter/internal/model"
)

// Limiter rate-limits requests per key, typically the LLM provider name
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter allowing requestsPerSecond per key.
// A non-positive rate disables limiting.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Wait blocks until a request for key is allowed or ctx is done
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[key] = limiter

	return limiter
}

// SetRate overrides the limit for one key. A non-positive rate disables
// limiting for that key.
func (l *Limiter) SetRate(key string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}

	l.limiters[key] = rate.NewLimiter(limit, burst)
}

// NewProviderLimiter builds a limiter from the rate limiting config: the
// default rate applies to every provider without an override.
func NewProviderLimiter(cfg model.RateLimitingConfig) *Limiter {
	l := NewLimiter(cfg.RequestsPerSecond, cfg.Burst)
	for provider, r := range cfg.Providers {
		l.SetRate(strings.ToLower(provider), r.RequestsPerSecond, r.Burst)
	}
	return l
}
