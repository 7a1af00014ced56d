package llm

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/ghostwriter/internal/cache"
)

// countingProvider answers every prompt with a fixed text and counts calls
type countingProvider struct {
	calls int
}

func (p *countingProvider) Name() string                     { return "counting" }
func (p *countingProvider) IsAvailable(context.Context) bool { return true }

func (p *countingProvider) Generate(_ context.Context, req GenerateRequest) (*GenerateResponse, error) {
	p.calls++
	return &GenerateResponse{Text: "reply to " + req.Prompt, Model: "test-model", TokensUsed: 10}, nil
}

func TestCachedProvider_ServesRepeatedRequests(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachedProvider(inner, cache.NewMemoryCache(time.Minute, time.Minute), 0, nil)
	ctx := context.Background()

	first, err := p.Generate(ctx, GenerateRequest{Prompt: "hello"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first.Cached {
		t.Error("first response should not be cached")
	}

	second, err := p.Generate(ctx, GenerateRequest{Prompt: "hello"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !second.Cached {
		t.Error("second response should be served from cache")
	}
	if second.Text != first.Text || second.TokensUsed != first.TokensUsed {
		t.Errorf("cached response %+v differs from original %+v", second, first)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", inner.calls)
	}

	if _, err := p.Generate(ctx, GenerateRequest{Prompt: "hello", MaxTokens: 50}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("different max tokens should miss the cache, got %d calls", inner.calls)
	}
}

func TestCachedProvider_NoCache(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachedProvider(inner, cache.NewMemoryCache(time.Minute, time.Minute), 0, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := p.Generate(ctx, GenerateRequest{Prompt: "fresh", NoCache: true})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if resp.Cached {
			t.Error("NoCache request returned a cached response")
		}
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 upstream calls, got %d", inner.calls)
	}
	if p.Name() != "counting" {
		t.Errorf("Name() = %q, want the wrapped provider's name", p.Name())
	}
}
