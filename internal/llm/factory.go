package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/disha/internal/store"
	"github.com/rs/zerolog"
)

// NewProvider builds the configured backend and wraps it as
// retry(logging(backend)), so each attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log zerolog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	log = log.With().Str("component", "llm").Logger()
	logged := WithLogging(base, cfg.Provider, events, log)
	retried := WithRetry(logged, cfg.Retry).WithLogger(log)
	if cfg.Timeout <= 0 {
		return retried, nil
	}
	return &timeoutProvider{Provider: retried, timeout: cfg.Timeout}, nil
}

// timeoutProvider bounds each Generate call, retries included.
type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}

// NewProviderFromEnv uses the DISHA_* variables when DISHA_LLM_PROVIDER is
// set, otherwise the first vendor API key found in the environment.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo, log zerolog.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, events, log)
}
