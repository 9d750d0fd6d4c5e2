package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer"},
			"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"name", "age"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if len(schema.Properties["grade"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["grade"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_CarriesBounds(t *testing.T) {
	schema := buildGeminiSchema(testSchema().Definition)

	questions := schema.Properties["questions"]
	if questions.MinItems == nil || *questions.MinItems != 1 {
		t.Fatalf("expected minItems 1 on questions, got %v", questions.MinItems)
	}
	if questions.MaxItems != nil {
		t.Fatalf("expected unbounded questions, got %v", *questions.MaxItems)
	}

	answers := questions.Items.Properties["answers"]
	if answers.MinItems == nil || *answers.MinItems != 2 || answers.MaxItems == nil || *answers.MaxItems != 5 {
		t.Fatalf("expected answers bounded 2..5, got %v..%v", answers.MinItems, answers.MaxItems)
	}

	points := questions.Items.Properties["points"]
	if points.Minimum == nil || *points.Minimum != 1 || points.Maximum == nil || *points.Maximum != 10 {
		t.Fatalf("expected points bounded 1..10")
	}

	if got := schema.PropertyOrdering; len(got) != 3 || got[0] != "level" || got[2] != "topic" {
		t.Fatalf("expected sorted property ordering, got %v", got)
	}
}

func TestBuildGeminiSchema_KeepsOnlyDateTimeFormat(t *testing.T) {
	def := Obj(map[string]any{
		"id":        UUID(""),
		"createdAt": DateTime(""),
	}, "id", "createdAt")

	schema := buildGeminiSchema(def)
	if schema.Properties["id"].Format != "" {
		t.Fatalf("expected uuid format to be dropped, got %q", schema.Properties["id"].Format)
	}
	if schema.Properties["createdAt"].Format != "date-time" {
		t.Fatalf("expected date-time format, got %q", schema.Properties["createdAt"].Format)
	}
}

func TestGeminiTruncated(t *testing.T) {
	tests := []struct {
		reason genai.FinishReason
		want   bool
	}{
		{genai.FinishReasonStop, false},
		{genai.FinishReasonMaxTokens, true},
		{genai.FinishReasonSafety, false},
	}
	for _, tt := range tests {
		result := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: tt.reason}}}
		if got := truncated(result); got != tt.want {
			t.Errorf("truncated(%s) = %v, want %v", tt.reason, got, tt.want)
		}
	}
	if truncated(&genai.GenerateContentResponse{}) {
		t.Error("no candidates reported as truncated")
	}
}
