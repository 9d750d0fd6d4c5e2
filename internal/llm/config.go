package llm

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend serves every tool.
	// Values: "openai", "gemini", "anthropic", "mock"
	Provider string `mapstructure:"provider" yaml:"provider"`

	OpenAI    OpenAIConfig    `mapstructure:"openai" yaml:"openai"`
	Gemini    GeminiConfig    `mapstructure:"gemini" yaml:"gemini"`
	Anthropic AnthropicConfig `mapstructure:"anthropic" yaml:"anthropic"`
	Retry     RetryConfig     `mapstructure:"retry" yaml:"retry"`

	// Timeout bounds a single provider call, including retries.
	// Zero means no deadline beyond the caller's context.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"`       // Default: "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url" yaml:"base_url"` // Optional. OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Model  string `mapstructure:"model" yaml:"model"` // Default: "gemini-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	Model  string `mapstructure:"model" yaml:"model"` // Default: "claude-haiku"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait" yaml:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait" yaml:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier" yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &ErrConfiguration{Setting: "OPENAI_API_KEY", Reason: "required for the openai provider"}
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return &ErrConfiguration{Setting: "GOOGLE_GEMINI_API_KEY", Reason: "required for the gemini provider"}
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return &ErrConfiguration{Setting: "ANTHROPIC_API_KEY", Reason: "required for the anthropic provider"}
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// CheckCredentials reports whether both the OpenAI and Gemini credentials
// are configured. Every /api route is gated on this regardless of which
// provider is selected.
func (c Config) CheckCredentials() error {
	var missing []string
	if strings.TrimSpace(c.OpenAI.APIKey) == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		missing = append(missing, "GOOGLE_GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return &ErrConfiguration{
			Setting: strings.Join(missing, ", "),
			Reason:  "not set",
		}
	}
	return nil
}
