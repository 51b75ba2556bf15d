package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the backend used for counsellor advice.
type Config struct {
	// Provider is one of the Provider* constants.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL points the client at an OpenAI-compatible server.
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses the cheapest model of each backend. Advice is short
// and a student waits on it.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// envOverride copies every non-empty variable into its destination.
func envOverride(pairs map[string]*string) {
	for key, dst := range pairs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

// ConfigFromEnv reads DISHA_LLM_* and per-backend DISHA_* variables on
// top of DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	envOverride(map[string]*string{
		"DISHA_LLM_PROVIDER":        &cfg.Provider,
		"DISHA_ANTHROPIC_API_KEY":   &cfg.Anthropic.APIKey,
		"DISHA_ANTHROPIC_MODEL":     &cfg.Anthropic.Model,
		"DISHA_OPENAI_API_KEY":      &cfg.OpenAI.APIKey,
		"DISHA_OPENAI_MODEL":        &cfg.OpenAI.Model,
		"DISHA_OPENAI_BASE_URL":     &cfg.OpenAI.BaseURL,
		"DISHA_GEMINI_API_KEY":      &cfg.Gemini.APIKey,
		"DISHA_GEMINI_MODEL":        &cfg.Gemini.Model,
		"DISHA_OPENROUTER_API_KEY":  &cfg.OpenRouter.APIKey,
		"DISHA_OPENROUTER_MODEL":    &cfg.OpenRouter.Model,
		"DISHA_OPENROUTER_BASE_URL": &cfg.OpenRouter.BaseURL,
	})
	if d, err := time.ParseDuration(os.Getenv("DISHA_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// DiscoverConfig looks for the vendors' own API key variables, in the
// order Gemini, OpenAI, Anthropic, OpenRouter. It reports false when
// none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate reports a missing key for the selected backend.
func (c Config) Validate() error {
	var key, envName string
	switch c.Provider {
	case ProviderAnthropic:
		key, envName = c.Anthropic.APIKey, "DISHA_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, envName = c.OpenAI.APIKey, "DISHA_OPENAI_API_KEY"
	case ProviderGemini:
		key, envName = c.Gemini.APIKey, "DISHA_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, envName = c.OpenRouter.APIKey, "DISHA_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envName, c.Provider)
	}
	return nil
}

// Model returns the model name configured for the selected backend.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	}
	return c.Provider
}
