// Package llm talks to hosted language models for the counsellor feature.
// Every backend returns JSON that has been checked against the request
// schema, so callers can unmarshal it straight into their own types.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a single response for a Request.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the output is validated JSON for that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider is configured to call.
	ModelID() string
}

// Request is one prompt.
type Request struct {
	// System sets the assistant's role, e.g. "You are a career counsellor".
	System string

	// Messages is usually a single user turn.
	Messages []Message

	// Schema, when set, asks the backend for structured output.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero means deterministic.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON object a caller expects back.
type Schema struct {
	// Name is kebab-case, e.g. "career-advice".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output.
type Response struct {
	// Content is validated JSON when a schema was requested, otherwise
	// the raw text encoded as a JSON string.
	Content json.RawMessage

	Usage Usage
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage is the token count for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)
