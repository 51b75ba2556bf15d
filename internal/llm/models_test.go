package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveModel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"gemini-flash", "gemini-2.0-flash"},
		{"gpt-4o-mini", "gpt-4o-mini"},
		{"meta-llama/llama-3-8b", "meta-llama/llama-3-8b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.in), tt.in)
	}
}

func TestLookupCost(t *testing.T) {
	byID, ok := LookupCost("claude-haiku-4-5-20251001")
	assert.True(t, ok)
	byAlias, ok := LookupCost("claude-haiku")
	assert.True(t, ok)
	assert.Equal(t, byID, byAlias)

	// 1M input at $1 plus 200k output at $5.
	assert.InDelta(t, 2.0, byID.Cost(1_000_000, 200_000), 1e-9)

	_, ok = LookupCost("mock")
	assert.False(t, ok)
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", FormatCost(0.00123))
	assert.Equal(t, "$1.50", FormatCost(1.5))
}
