package llm

import "fmt"

// modelInfo describes a model Disha knows by a short alias. Prices are USD
// per million tokens.
type modelInfo struct {
	Alias         string
	ID            string
	InputPerMTok  float64
	OutputPerMTok float64
}

var knownModels = []modelInfo{
	{"claude-haiku", "claude-haiku-4-5-20251001", 1, 5},
	{"claude-sonnet", "claude-sonnet-4-20250514", 3, 15},
	{"gpt-4o-mini", "gpt-4o-mini", 0.15, 0.6},
	{"gpt-4o", "gpt-4o", 2.5, 10},
	{"gemini-flash", "gemini-2.0-flash", 0.1, 0.4},
	{"gemini-pro", "gemini-2.5-pro", 1.25, 10},
	{"", "google/gemini-2.0-flash-001", 0.1, 0.4},
	{"", "openai/gpt-4o-mini", 0.15, 0.6},
}

// resolveModel turns an alias into a model ID. Unknown names pass through
// so any ID the vendor accepts can be configured.
func resolveModel(name string) string {
	for _, m := range knownModels {
		if m.Alias != "" && m.Alias == name {
			return m.ID
		}
	}
	return name
}

// ModelCost is the price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD price of one request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost finds pricing by model ID or alias. ok is false for models
// without a known price.
func LookupCost(model string) (cost ModelCost, ok bool) {
	for _, m := range knownModels {
		if m.ID == model || (m.Alias != "" && m.Alias == model) {
			return ModelCost{m.InputPerMTok, m.OutputPerMTok}, true
		}
	}
	return ModelCost{}, false
}

// FormatCost renders a dollar amount with enough precision for the tiny
// per-request prices.
func FormatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
