// Package cache stores model responses so repeated prompts are not re-billed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"time"

	"github.com/ppiankov/ghostwriter/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

const keyPrefix = "ghostwriter:v1:"

// CacheKey derives a stable key from the parts that determine a response
// (provider, model, token budget, prompt).
func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg: memory backed by disk, or a no-op
// cache when caching is disabled.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return NopCache{}
	}
	ttl := time.Duration(cfg.TTL) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return NewLayeredCache(time.Hour, filepath.Join(cfg.Dir, "responses"), ttl)
}

// NopCache never stores anything
type NopCache struct{}

func (NopCache) Get(string) ([]byte, bool)               { return nil, false }
func (NopCache) Set(string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(string) error                     { return nil }
func (NopCache) Clear() error                            { return nil }
