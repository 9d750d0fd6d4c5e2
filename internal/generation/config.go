package generation

import "fmt"

// Mode selects how structured content is obtained from the provider.
type Mode string

const (
	// ModeExtract asks for JSON in the prompt and recovers it from the
	// model's free text with an extraction chain.
	ModeExtract Mode = "extract"

	// ModeConstrained hands the schema to the provider's structured output
	// mechanism.
	ModeConstrained Mode = "constrained"
)

// Config controls the Generator.
type Config struct {
	Mode Mode `mapstructure:"mode" yaml:"mode"`

	// Version is stamped into every result's metadata.
	Version string `mapstructure:"version" yaml:"version"`

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// DefaultConfig returns the configuration every tool was tuned against.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeExtract,
		Version:     "1.0.0",
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Validate checks mode and sampling settings. The version format is
// checked by the config package.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeExtract, ModeConstrained:
	default:
		return fmt.Errorf("generation.mode must be %q or %q, got %q", ModeExtract, ModeConstrained, c.Mode)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("generation.max_tokens must not be negative, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("generation.temperature must be between 0 and 1, got %g", c.Temperature)
	}
	return nil
}
