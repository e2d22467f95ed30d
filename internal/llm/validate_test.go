package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func pitchSchema() *Schema {
	return &Schema{
		Name:        "test-pitches",
		Description: "Pitches keyed by movie id",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pitches": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":    map[string]any{"type": "integer", "minimum": 1},
							"text":  map[string]any{"type": "string"},
							"label": map[string]any{"type": "string", "enum": []any{"drama", "comedy"}},
						},
						"required": []any{"id", "text"},
					},
				},
			},
			"required": []any{"pitches"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"pitches":[{"id":1,"text":"A quiet, moving story.","label":"drama"}]}`, false},
		{"optional omitted", `{"pitches":[{"id":2,"text":"Laughs throughout."}]}`, false},
		{"empty list", `{"pitches":[]}`, false},
		{"missing required", `{"pitches":[{"id":3}]}`, true},
		{"wrong type", `{"pitches":[{"id":"three","text":"x"}]}`, true},
		{"bad enum", `{"pitches":[{"id":4,"text":"x","label":"western"}]}`, true},
		{"below minimum", `{"pitches":[{"id":0,"text":"x"}]}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(pitchSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := pitchSchema()
	s.Name = "test-cache"
	first, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Fatal("expected cached schema to be reused")
	}
}
