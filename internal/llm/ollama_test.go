package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "llama3.1:8b" {
			t.Errorf("Expected model llama3.1:8b, got %s", req.Model)
		}
		if req.Stream {
			t.Error("Expected non-streaming request")
		}
		if req.Options.NumPredict != 600 {
			t.Errorf("Expected num_predict 600, got %d", req.Options.NumPredict)
		}

		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:           "llama3.1:8b",
			Response:        "STATUS: VERIFIED",
			Done:            true,
			PromptEvalCount: 30,
			EvalCount:       20,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1:8b"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "Verify", MaxTokens: 600})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Text != "STATUS: VERIFIED" {
		t.Errorf("Unexpected text: %q", resp.Text)
	}
	if resp.TokensUsed != 50 {
		t.Errorf("Expected 50 tokens used, got %d", resp.TokensUsed)
	}
}

func TestOllamaProvider_Generate_EstimatesTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaResponse{Model: "mistral", Response: "12345678", Done: true})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "mistral"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "abcdefgh"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.TokensUsed != 4 {
		t.Errorf("Expected 4 estimated tokens, got %d", resp.TokensUsed)
	}
}

func TestOllamaProvider_Generate_RequiresModel(t *testing.T) {
	provider, err := NewOllamaProvider(Config{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	if _, err := provider.Generate(context.Background(), GenerateRequest{Prompt: "hi"}); err == nil {
		t.Error("Expected error when no model is configured")
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Expected path /api/tags, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"mistral:latest"},{"name":"llama3.1:8b"}]}`))
	}))
	defer server.Close()

	tests := []struct {
		model string
		want  bool
	}{
		{"", true},
		{"mistral", true},
		{"llama3.1:8b", true},
		{"qwen2:7b", false},
	}

	for _, tt := range tests {
		provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: tt.model})
		if err != nil {
			t.Fatalf("Failed to create provider: %v", err)
		}
		if got := provider.IsAvailable(context.Background()); got != tt.want {
			t.Errorf("IsAvailable(model=%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
