package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

var printer = message.NewPrinter(language.English)

// ValidationError names the first field of a value that violates a schema.
type ValidationError struct {
	Schema     string // Schema name
	Field      string // Path into the value, e.g. "data.questions[0].answers"
	Constraint string // Failing keyword, e.g. "required", "enum", "minItems"
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema %q: field %s: %s", e.Schema, e.Field, e.Message)
}

// Validate checks a value against the schema. The value may be raw JSON
// bytes or any value that marshals to JSON. It returns *ValidationError on
// a structural mismatch. Leaf failures are ordered by field path then
// keyword so the reported field is stable across calls.
func Validate(schema *Schema, value any) error {
	if schema == nil {
		return nil
	}

	doc, err := toJSONValue(value)
	if err != nil {
		return err
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	err = compiled.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return firstFailure(schema.Name, verr)
}

// validateResponse validates raw provider output against the given Schema.
// Returns nil if no schema is provided or validation passes.
// Returns *ErrInvalidResponse on failure.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if err := Validate(schema, raw); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}

func toJSONValue(value any) (any, error) {
	var raw []byte
	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal value: %w", err)
		}
		raw = b
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return parsed, nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not Go maps
	// holding ints and []string. Round-trip through JSON to normalise.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

func firstFailure(name string, root *jsonschema.ValidationError) *ValidationError {
	leaves := collectLeaves(root, nil)
	sort.SliceStable(leaves, func(i, j int) bool {
		a, b := fieldPath(leaves[i].InstanceLocation), fieldPath(leaves[j].InstanceLocation)
		if a != b {
			return a < b
		}
		return keyword(leaves[i]) < keyword(leaves[j])
	})

	leaf := leaves[0]
	field := leaf.InstanceLocation
	if req, ok := leaf.ErrorKind.(*kind.Required); ok && len(req.Missing) > 0 {
		missing := append([]string(nil), req.Missing...)
		sort.Strings(missing)
		field = append(append([]string(nil), field...), missing[0])
	}

	return &ValidationError{
		Schema:     name,
		Field:      fieldPath(field),
		Constraint: keyword(leaf),
		Message:    leaf.ErrorKind.LocalizedString(printer),
	}
}

func collectLeaves(e *jsonschema.ValidationError, out []*jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(e.Causes) == 0 {
		return append(out, e)
	}
	for _, c := range e.Causes {
		out = collectLeaves(c, out)
	}
	return out
}

func keyword(e *jsonschema.ValidationError) string {
	path := e.ErrorKind.KeywordPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

// fieldPath renders an instance location as "a.b[0].c"; the root is "(root)".
func fieldPath(loc []string) string {
	if len(loc) == 0 {
		return "(root)"
	}
	var b strings.Builder
	for _, seg := range loc {
		if isIndex(seg) {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
