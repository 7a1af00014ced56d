package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/ppiankov/ghostwriter/internal/cache"
)

// CachedProvider serves repeated identical requests from a cache.
// Requests with NoCache set always reach the wrapped provider and are not stored.
type CachedProvider struct {
	Provider
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProvider wraps p with c. A zero ttl uses the cache's default.
func NewCachedProvider(p Provider, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedProvider{Provider: p, cache: c, ttl: ttl, logger: logger}
}

// Generate returns a cached response when available
func (p *CachedProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if req.NoCache {
		return p.Provider.Generate(ctx, req)
	}

	key := cache.CacheKey(p.Name(), req.Model, strconv.Itoa(req.MaxTokens), req.System, req.Prompt)
	if data, ok := p.cache.Get(key); ok {
		var resp GenerateResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			resp.Cached = true
			p.logger.Debug("cache hit", "provider", p.Name(), "model", resp.Model)
			return &resp, nil
		}
		_ = p.cache.Delete(key)
	}

	resp, err := p.Provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := p.cache.Set(key, data, p.ttl); err != nil {
			p.logger.Warn("failed to cache response", "error", err)
		}
	}
	return resp, nil
}
