package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string", "description": "One paragraph"},
			"score":   map[string]any{"type": "integer"},
			"band":    map[string]any{"type": "string", "enum": []any{"excellent", "good", "needs-work"}},
			"streams": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"maxItems": 3,
			},
		},
		"required": []string{"summary", "streams"},
	}

	s := geminiSchema(def)

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, genai.TypeString, s.Properties["summary"].Type)
	assert.Equal(t, "One paragraph", s.Properties["summary"].Description)
	assert.Equal(t, genai.TypeInteger, s.Properties["score"].Type)
	assert.Equal(t, []string{"excellent", "good", "needs-work"}, s.Properties["band"].Enum)

	streams := s.Properties["streams"]
	assert.Equal(t, genai.TypeArray, streams.Type)
	assert.Equal(t, genai.TypeString, streams.Items.Type)
	require.NotNil(t, streams.MaxItems)
	assert.EqualValues(t, 3, *streams.MaxItems)

	assert.Equal(t, []string{"summary", "streams"}, s.Required)
}

func TestGeminiSchema_UnknownTypeIsString(t *testing.T) {
	s := geminiSchema(map[string]any{"type": "null"})
	assert.Equal(t, genai.TypeString, s.Type)
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err)
}
