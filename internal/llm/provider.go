package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any text
var ErrEmptyResponse = errors.New("empty response from provider")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces a completion for a single prompt
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for a completion
type GenerateRequest struct {
	// Prompt is the user message
	Prompt string

	// System overrides DefaultSystemPrompt when set
	System string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature overrides the configured temperature when non-zero
	Temperature float64

	// NoCache forces a fresh completion even if an identical request was cached
	NoCache bool
}

// GenerateResponse contains the completion text
type GenerateResponse struct {
	// Text is the generated completion
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int

	// Cached is true when the response was served from the cache
	Cached bool
}

// DefaultSystemPrompt frames every research and generation request
const DefaultSystemPrompt = "You are a literary historian and writing coach. Follow the requested output format exactly."

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Temperature for sampling (0.0 - 2.0)
	Temperature float64

	// MaxTokens for response generation when a request does not set one
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// resolve fills request defaults from the provider config
func (c Config) resolve(req GenerateRequest, defaultModel string) (model, system string, maxTokens int, temperature float64) {
	model = req.Model
	if model == "" {
		model = c.Model
	}
	if model == "" {
		model = defaultModel
	}

	system = req.System
	if system == "" {
		system = DefaultSystemPrompt
	}

	maxTokens = req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1000
	}

	temperature = req.Temperature
	if temperature == 0 {
		temperature = c.Temperature
	}
	return model, system, maxTokens, temperature
}
