package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/ghostwriter/internal/util"
)

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	if _, err := p.client.ListModels(ctx); err != nil {
		slog.Warn("OpenAI API check failed", "error", err)
		return false
	}
	return true
}

// Generate produces a completion using OpenAI's Chat Completions API
func (p *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model, system, maxTokens, temperature := p.config.resolve(req, openai.GPT4oMini)

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("OpenAI: %w", ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, fmt.Errorf("OpenAI (finish reason %s): %w", resp.Choices[0].FinishReason, ErrEmptyResponse)
	}

	return &GenerateResponse{
		Text:       text,
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
