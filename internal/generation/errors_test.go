package generation

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/abhisek/edugen/internal/extract"
	"github.com/abhisek/edugen/internal/llm"
)

func TestKind_Status(t *testing.T) {
	tests := map[Kind]int{
		KindMissingField:    http.StatusBadRequest,
		KindInvalidInput:    http.StatusBadRequest,
		KindProvider:        http.StatusInternalServerError,
		KindEmptyResponse:   http.StatusInternalServerError,
		KindMalformedOutput: http.StatusInternalServerError,
		KindValidation:      http.StatusInternalServerError,
		KindConfiguration:   http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := kind.Status(); got != want {
			t.Errorf("%s.Status() = %d, want %d", kind, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"empty", &llm.ErrEmptyResponse{Model: "gpt-4o-mini"}, KindEmptyResponse},
		{"invalid", &llm.ErrInvalidResponse{Err: errors.New("bad")}, KindValidation},
		{"schema", &llm.ValidationError{Schema: "s", Field: "f"}, KindValidation},
		{"configuration", &llm.ErrConfiguration{Setting: "OPENAI_API_KEY"}, KindConfiguration},
		{"malformed", &extract.MalformedOutputError{}, KindMalformedOutput},
		{"truncated", &llm.ErrMaxTokensExceeded{Content: []byte(`{"questions":[{"te`)}, KindMalformedOutput},
		{"wrapped empty", fmt.Errorf("call: %w", &llm.ErrEmptyResponse{}), KindEmptyResponse},
		{"anything else", errors.New("connection reset"), KindProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("quiz-generator", tt.err)
			if got.Kind != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.Kind)
			}
			if !errors.Is(got, tt.err) {
				t.Fatal("expected cause to be preserved")
			}
		})
	}
}

func TestClassify_PassesThroughErrors(t *testing.T) {
	orig := Missing("rubric-generator", "Missing required fields", "keyStage")
	if got := Classify("other", fmt.Errorf("wrapped: %w", orig)); got != orig {
		t.Fatalf("expected original error, got %+v", got)
	}
	if Classify("x", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestWithHeadline(t *testing.T) {
	err := WithHeadline(&llm.ErrProviderUnavailable{Err: errors.New("503")}, "rubric-generator", "Failed to generate rubric")
	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if genErr.Message != "Failed to generate rubric" || genErr.Kind != KindProvider {
		t.Fatalf("unexpected error %+v", genErr)
	}
	if genErr.Details() == "" {
		t.Fatal("expected cause in details")
	}

	missing := Missing("rubric-generator", "Missing required fields: assignmentType, keyStage, and criteria")
	err = WithHeadline(missing, "rubric-generator", "Failed to generate rubric")
	if !errors.As(err, &genErr) || genErr.Message != missing.Message {
		t.Fatalf("caller errors keep their message, got %v", err)
	}

	if WithHeadline(nil, "x", "y") != nil {
		t.Fatal("expected nil")
	}
}

func TestError_Message(t *testing.T) {
	e := Missing("peel-generator", "Missing required field: topic", "topic")
	if e.Error() != "Missing required field: topic" || e.Details() != "" {
		t.Fatalf("unexpected error text %q / %q", e.Error(), e.Details())
	}

	inv := Invalid("peel-generator", errors.New("complexity: value must be one of"), "complexity")
	if inv.Kind != KindInvalidInput || inv.Error() != "Invalid request: complexity: value must be one of" {
		t.Fatalf("unexpected invalid error %q", inv.Error())
	}
}
