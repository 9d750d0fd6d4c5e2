package generation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abhisek/edugen/internal/extract"
	"github.com/abhisek/edugen/internal/llm"
)

// Kind classifies a generation failure. Each kind maps to one HTTP status.
type Kind string

const (
	KindMissingField    Kind = "missing_field"
	KindInvalidInput    Kind = "invalid_input"
	KindProvider        Kind = "provider_error"
	KindEmptyResponse   Kind = "empty_response"
	KindMalformedOutput Kind = "malformed_output"
	KindValidation      Kind = "validation_error"
	KindConfiguration   Kind = "configuration_error"
)

// Status returns the HTTP status code for the kind: 400 for caller
// mistakes, 500 for everything else.
func (k Kind) Status() int {
	switch k {
	case KindMissingField, KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single error type tools return.
type Error struct {
	Kind    Kind
	Tool    string
	Message string   // headline shown to the caller as "error"
	Fields  []string // missing or offending request fields
	Err     error    // cause, shown to the caller as "details"
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Details is the caller-facing cause text, empty when there is none.
func (e *Error) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Missing reports absent required fields. No provider call is made.
func Missing(tool, message string, fields ...string) *Error {
	return &Error{Kind: KindMissingField, Tool: tool, Message: message, Fields: fields}
}

// Invalid reports a request that is present but malformed or out of range.
func Invalid(tool string, err error, fields ...string) *Error {
	return &Error{Kind: KindInvalidInput, Tool: tool, Message: "Invalid request", Fields: fields, Err: err}
}

// Classify maps any error from the generation pipeline into the taxonomy.
// Errors that are already *Error pass through unchanged.
func Classify(tool string, err error) *Error {
	if err == nil {
		return nil
	}

	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr
	}

	kind := KindProvider
	var (
		empty     *llm.ErrEmptyResponse
		invalid   *llm.ErrInvalidResponse
		schemaErr *llm.ValidationError
		cfgErr    *llm.ErrConfiguration
		truncated *llm.ErrMaxTokensExceeded
		malformed *extract.MalformedOutputError
	)
	switch {
	case errors.As(err, &cfgErr):
		kind = KindConfiguration
	case errors.As(err, &empty):
		kind = KindEmptyResponse
	case errors.As(err, &malformed), errors.As(err, &truncated):
		kind = KindMalformedOutput
	case errors.As(err, &invalid), errors.As(err, &schemaErr):
		kind = KindValidation
	}
	return &Error{Kind: kind, Tool: tool, Message: "Content generation failed", Err: err}
}

// WithHeadline replaces the caller-facing headline of server-side failures
// with the tool's own ("Failed to generate rubric"). Caller mistakes keep
// their specific message.
func WithHeadline(err error, tool, headline string) error {
	if err == nil {
		return nil
	}
	genErr := Classify(tool, err)
	if genErr.Kind.Status() == http.StatusBadRequest {
		return genErr
	}
	out := *genErr
	out.Message = headline
	return &out
}
