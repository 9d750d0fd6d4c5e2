// Package config loads edugen's configuration from defaults, an optional
// YAML file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/llm"
)

// EnvPrefix prefixes every environment override: EDUGEN_SERVER_ADDR sets
// server.addr.
const EnvPrefix = "EDUGEN"

type Config struct {
	Server     ServerConfig      `mapstructure:"server" yaml:"server"`
	Log        LogConfig         `mapstructure:"log" yaml:"log"`
	Generation generation.Config `mapstructure:"generation" yaml:"generation"`
	LLM        llm.Config        `mapstructure:"llm" yaml:"llm"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // console or json
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server:     ServerConfig{Addr: ":8080"},
		Log:        LogConfig{Level: "info", Format: "console"},
		Generation: generation.DefaultConfig(),
		LLM:        llm.DefaultConfig(),
	}
}

// credentialEnv maps provider keys to the bare variable names deployments
// already use.
var credentialEnv = map[string]string{
	"llm.openai.api_key":    "OPENAI_API_KEY",
	"llm.gemini.api_key":    "GOOGLE_GEMINI_API_KEY",
	"llm.anthropic.api_key": "ANTHROPIC_API_KEY",
}

// Load reads the configuration. path names a YAML file; when empty,
// edugen.yaml is looked up in the working directory and
// $HOME/.config/edugen and is optional. A .env file in the working
// directory is loaded first but never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range credentialEnv {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("edugen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/edugen")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// appear in no config file.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("generation.mode", string(d.Generation.Mode))
	v.SetDefault("generation.version", d.Generation.Version)
	v.SetDefault("generation.max_tokens", d.Generation.MaxTokens)
	v.SetDefault("generation.temperature", d.Generation.Temperature)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", d.LLM.OpenAI.BaseURL)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.LLM.Anthropic.Model)
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)
}

// Validate checks everything that does not depend on credentials. Provider
// credentials are checked when the provider is built and by the /api gate.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if err := c.Generation.Validate(); err != nil {
		return err
	}
	if !semver.IsValid("v" + c.Generation.Version) {
		return fmt.Errorf("generation.version must be a semantic version such as 1.0.0, got %q", c.Generation.Version)
	}
	switch c.LLM.Provider {
	case "openai", "gemini", "anthropic", "mock":
	default:
		return fmt.Errorf("llm.provider must be one of openai, gemini, anthropic, mock; got %q", c.LLM.Provider)
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm.retry.max_attempts must be at least 1, got %d", c.LLM.Retry.MaxAttempts)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative, got %s", c.LLM.Timeout)
	}
	return nil
}

const redacted = "********"

// Render returns the configuration as YAML with credentials masked.
func Render(c Config) ([]byte, error) {
	for _, key := range []*string{&c.LLM.OpenAI.APIKey, &c.LLM.Gemini.APIKey, &c.LLM.Anthropic.APIKey} {
		if *key != "" {
			*key = redacted
		}
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
