package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	mock.Queue(MockResponse{Content: json.RawMessage(`{"b":2}`)})

	first, err := mock.Generate(context.Background(), Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, StopEnd, first.StopReason)

	second, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(second.Content))

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	calls := mock.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "sys", calls[0].System)
	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProvider_ReturnsQueuedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "career-advice", PurposeFrom(WithPurpose(ctx, "career-advice")))
	assert.Equal(t, "unknown", PurposeFrom(WithPurpose(ctx, "")))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "DISHA_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk"}}, ""},
		{"openai without key", Config{Provider: ProviderOpenAI}, "DISHA_OPENAI_API_KEY"},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "g"}}, ""},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, "DISHA_OPENROUTER_API_KEY"},
		{"mock needs no key", Config{Provider: ProviderMock}, ""},
		{"unknown provider", Config{Provider: "bard"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DISHA_LLM_PROVIDER", "DISHA_LLM_TIMEOUT",
		"DISHA_ANTHROPIC_API_KEY", "DISHA_ANTHROPIC_MODEL",
		"DISHA_OPENAI_API_KEY", "DISHA_OPENAI_MODEL", "DISHA_OPENAI_BASE_URL",
		"DISHA_GEMINI_API_KEY", "DISHA_GEMINI_MODEL",
		"DISHA_OPENROUTER_API_KEY", "DISHA_OPENROUTER_MODEL", "DISHA_OPENROUTER_BASE_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("DISHA_LLM_PROVIDER", "openai")
	t.Setenv("DISHA_OPENAI_API_KEY", "sk-test")
	t.Setenv("DISHA_OPENAI_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("DISHA_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Model())
	assert.Equal(t, "5s", cfg.Timeout.String())
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverConfig(t *testing.T) {
	clearLLMEnv(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, ok = DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderGemini, cfg.Provider)
}
