package counsel

import "github.com/abhisek/disha/internal/llm"

// AdviceSchema is the structured output requested from the model.
var AdviceSchema = &llm.Schema{
	Name:        "career-advice",
	Description: "Short career guidance for an Indian student based on a quiz result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 encouraging sentences addressed to the student",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 strengths shown by the result (under 10 words each)",
			},
			"next_steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-4 concrete actions for the next month",
			},
			"streams": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "1-3 study streams or courses worth exploring",
			},
		},
		"required":             []any{"summary", "strengths", "next_steps", "streams"},
		"additionalProperties": false,
	},
}

type adviceOutput struct {
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	NextSteps []string `json:"next_steps"`
	Streams   []string `json:"streams"`
}
