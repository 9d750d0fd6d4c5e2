package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/llm"
)

// Decode unmarshals a request body into T. An empty body decodes as {} so
// that required-field checks, not the decoder, report what is missing.
func Decode[T any](tool string, body json.RawMessage) (*T, error) {
	var req T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &req, nil
	}
	if err := json.Unmarshal(trimmed, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, generation.Invalid(tool, fmt.Errorf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value), typeErr.Field)
		}
		return nil, generation.Invalid(tool, fmt.Errorf("request body is not valid JSON: %w", err))
	}
	return &req, nil
}

// CheckRequest validates the raw body against a request schema reflected
// from the tool's request struct.
func CheckRequest(tool string, schema *llm.Schema, body json.RawMessage) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	err := llm.Validate(schema, json.RawMessage(trimmed))
	if err == nil {
		return nil
	}
	var verr *llm.ValidationError
	if errors.As(err, &verr) {
		return generation.Invalid(tool, fmt.Errorf("%s: %s", verr.Field, verr.Message), verr.Field)
	}
	return generation.Invalid(tool, err)
}

// Requirement pairs a request field with whether it was supplied.
type Requirement struct {
	Field   string
	Present bool
}

// Field builds a Requirement.
func Field(name string, present bool) Requirement {
	return Requirement{Field: name, Present: present}
}

// Require returns a missing-field error carrying message when any
// requirement is not met, listing every absent field in order.
func Require(tool, message string, reqs ...Requirement) error {
	var missing []string
	for _, r := range reqs {
		if !r.Present {
			missing = append(missing, r.Field)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return generation.Missing(tool, message, missing...)
}

// Text reports whether s has non-whitespace content.
func Text(s string) bool {
	return strings.TrimSpace(s) != ""
}

// AnyText reports whether at least one element is non-blank.
func AnyText(ss []string) bool {
	for _, s := range ss {
		if Text(s) {
			return true
		}
	}
	return false
}

// Compact trims every element and drops blanks.
func Compact(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Or returns s trimmed, or def when s is blank.
func Or(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// Conform checks an assembled response against the tool's response schema
// before it leaves the service.
func Conform(tool string, schema *llm.Schema, response any) error {
	if err := llm.Validate(schema, response); err != nil {
		return generation.Classify(tool, err)
	}
	return nil
}
