package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/model"
)

// ErrUnknownProvider is returned for provider names NewProvider does not support
var ErrUnknownProvider = errors.New("unknown LLM provider")

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (LLM disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %s (supported: openai, anthropic, ollama)", ErrUnknownProvider, config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:    modelConfig.Provider,
		Model:       modelConfig.Model,
		APIKey:      modelConfig.APIKey,
		BaseURL:     modelConfig.BaseURL,
		Timeout:     modelConfig.Timeout,
		Temperature: modelConfig.Temperature,
		MaxTokens:   modelConfig.MaxTokens,
		HTTPProxy:   modelConfig.HTTPProxy,
		HTTPSProxy:  modelConfig.HTTPSProxy,
		NoProxy:     modelConfig.NoProxy,
	}
}
