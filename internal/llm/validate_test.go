package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-student",
		Description: "A student profile",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"all fields", `{"name":"Asha","age":16,"grade":"A"}`, false},
		{"optional omitted", `{"name":"Ravi","age":15}`, false},
		{"missing required", `{"name":"Meena"}`, true},
		{"wrong type", `{"name":"Kiran","age":"sixteen"}`, true},
		{"enum violation", `{"name":"Arjun","age":17,"grade":"D"}`, true},
		{"below minimum", `{"name":"Arjun","age":-1}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %v", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_ArrayItems(t *testing.T) {
	schema := &Schema{
		Name: "test-streams",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"streams": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 1,
				},
			},
			"required": []any{"streams"},
		},
	}

	if err := validateResponse(schema, json.RawMessage(`{"streams":["Science","Commerce"]}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := validateResponse(schema, json.RawMessage(`{"streams":[1,2]}`)); err == nil {
		t.Fatal("expected error for wrong item type")
	}
	if err := validateResponse(schema, json.RawMessage(`{"streams":[]}`)); err == nil {
		t.Fatal("expected error for empty list")
	}
}

func TestFinish_PlainTextIsQuoted(t *testing.T) {
	resp, err := finish(Request{}, json.RawMessage("Choose science."), Usage{}, "m", StopEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `"Choose science."` {
		t.Fatalf("expected quoted text, got %s", resp.Content)
	}
}

func TestFinish_TruncatedInvalidOutput(t *testing.T) {
	_, err := finish(Request{Schema: testSchema()}, json.RawMessage(`{"name":`), Usage{}, "m", StopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %v", err)
	}
}

func TestDecode(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	if err := Decode(&Response{Content: json.RawMessage(`{"name":"Meena"}`)}, &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Name != "Meena" {
		t.Fatalf("expected Meena, got %q", v.Name)
	}

	var invErr *ErrInvalidResponse
	if err := Decode(nil, &v); !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse for nil response, got: %v", err)
	}
}
