package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

type reflectedRequest struct {
	Topic      string   `json:"topic,omitempty"`
	Complexity string   `json:"complexity,omitempty" jsonschema:"enum=basic,enum=intermediate,enum=advanced"`
	Count      int      `json:"count,omitempty" jsonschema:"minimum=1,maximum=50"`
	Tags       []string `json:"tags,omitempty" jsonschema:"maxItems=3"`
}

func TestSchemaFor_ReflectsTags(t *testing.T) {
	schema := SchemaFor[reflectedRequest]("reflected", "A reflected request")

	if schema.Name != "reflected" || schema.Description != "A reflected request" {
		t.Fatalf("unexpected schema identity: %q %q", schema.Name, schema.Description)
	}
	if _, ok := schema.Definition["$schema"]; ok {
		t.Fatal("expected $schema to be removed")
	}
	props, ok := schema.Definition["properties"].(map[string]any)
	if !ok || len(props) != 4 {
		t.Fatalf("expected 4 properties, got %v", schema.Definition["properties"])
	}
}

func TestSchemaFor_ValidatesRequests(t *testing.T) {
	schema := SchemaFor[reflectedRequest]("reflected", "")

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"valid", `{"topic":"Volcanoes","complexity":"basic","count":5}`, ""},
		{"extra fields allowed", `{"topic":"Volcanoes","formId":"abc"}`, ""},
		{"empty body", `{}`, ""},
		{"bad enum", `{"complexity":"expert"}`, "complexity"},
		{"count out of range", `{"count":51}`, "count"},
		{"wrong type", `{"topic":7}`, "topic"},
		{"too many tags", `{"tags":["a","b","c","d"]}`, "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(schema, json.RawMessage(tt.body))
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got: %v", err)
			}
			if verr.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}
