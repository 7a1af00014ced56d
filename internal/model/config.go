package model

import "path/filepath"

// Config is the full ghostwriter configuration, loaded from defaults, the
// config file, GHOSTWRITER_* environment variables and flags (in that order).
type Config struct {
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Generation   GenerationConfig   `yaml:"generation" mapstructure:"generation"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Storage      StorageConfig      `yaml:"storage" mapstructure:"storage"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// LLMConfig selects and configures the text generation provider
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`       // Completion ceiling
	MaxContext  int     `yaml:"max_context" mapstructure:"max_context"`     // Approximate context window
	HTTPProxy   string  `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy  string  `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy     string  `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// GenerationConfig holds per-operation token budgets and batch sizes
type GenerationConfig struct {
	DiscoveryTokens    int `yaml:"discovery_tokens" mapstructure:"discovery_tokens"`
	AnalysisTokens     int `yaml:"analysis_tokens" mapstructure:"analysis_tokens"`
	VerificationTokens int `yaml:"verification_tokens" mapstructure:"verification_tokens"`
	RefinementTokens   int `yaml:"refinement_tokens" mapstructure:"refinement_tokens"`
	StyleGuideTokens   int `yaml:"style_guide_tokens" mapstructure:"style_guide_tokens"`
	ExampleTokens      int `yaml:"example_tokens" mapstructure:"example_tokens"`
	BatchSize          int `yaml:"batch_size" mapstructure:"batch_size"`   // Examples per generation call
	MaxFigures         int `yaml:"max_figures" mapstructure:"max_figures"` // Upper bound for search counts
}

// CacheConfig configures the response cache in front of the provider
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
	TTL     int    `yaml:"ttl" mapstructure:"ttl"` // hours
}

// ConcurrencyConfig bounds the example generation worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles requests per provider. Providers overrides
// the default rate by provider name; a rate of 0 means unlimited.
type RateLimitingConfig struct {
	RequestsPerSecond float64                 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int                     `yaml:"burst" mapstructure:"burst"`
	Providers         map[string]ProviderRate `yaml:"providers,omitempty" mapstructure:"providers"`
}

// ProviderRate is one provider's rate limit
type ProviderRate struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// StorageConfig locates persisted author data
type StorageConfig struct {
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`
}

// AuthorsDir is where per-author directories live
func (s StorageConfig) AuthorsDir() string {
	return filepath.Join(s.DataDir, "authors")
}

// LoggingConfig selects log level and handler
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text, json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     120,
			Temperature: 0.7,
			MaxTokens:   10000,
			MaxContext:  50000,
		},
		Generation: GenerationConfig{
			DiscoveryTokens:    1200,
			AnalysisTokens:     1500,
			VerificationTokens: 600,
			RefinementTokens:   1000,
			StyleGuideTokens:   800,
			ExampleTokens:      10000,
			BatchSize:          10,
			MaxFigures:         20,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".ghostwriter-cache",
			TTL:     24,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 2,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1.0,
			Burst:             2,
			Providers: map[string]ProviderRate{
				"ollama": {RequestsPerSecond: 0, Burst: 1}, // local
			},
		},
		Storage: StorageConfig{
			DataDir: "data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Normalize clamps values into their valid ranges: temperature to [0, 2],
// context to [1, 128000], and completion tokens below the context size.
func (c *Config) Normalize() {
	l := &c.LLM
	if l.Temperature < 0 {
		l.Temperature = 0
	}
	if l.Temperature > 2 {
		l.Temperature = 2
	}
	if l.MaxContext < 1 {
		l.MaxContext = 1
	}
	if l.MaxContext > 128000 {
		l.MaxContext = 128000
	}
	if l.MaxTokens < 1 {
		l.MaxTokens = 1
	}
	if l.MaxTokens >= l.MaxContext {
		l.MaxTokens = max(1, l.MaxContext-1)
	}

	g := &c.Generation
	if g.BatchSize < 1 {
		g.BatchSize = 10
	}
	if g.MaxFigures < 1 {
		g.MaxFigures = 20
	}
	if c.Concurrency.Workers < 1 {
		c.Concurrency.Workers = 1
	}
}
