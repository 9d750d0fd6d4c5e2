// Package tooltest holds helpers shared by the tool packages' tests.
package tooltest

import (
	"encoding/json"
	"testing"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/llm"
)

// Generator returns a generator backed by a mock provider queued with the
// given model outputs.
func Generator(t *testing.T, mode generation.Mode, outputs ...string) (*generation.Generator, *llm.MockProvider) {
	t.Helper()
	responses := make([]llm.MockResponse, len(outputs))
	for i, o := range outputs {
		responses[i] = llm.MockText(o)
	}
	mock := llm.NewMockProvider(responses...)
	cfg := generation.DefaultConfig()
	cfg.Mode = mode
	return generation.New(mock, cfg, nil), mock
}

// Body re-encodes a tool response as a generic JSON object with the
// generation metadata block removed, ready to check against a schema.
func Body(t *testing.T, resp any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if _, ok := body["generation"]; !ok {
		t.Fatalf("response has no generation block: %s", raw)
	}
	delete(body, "generation")
	return body
}

// Prompt returns the user message of the n-th provider call.
func Prompt(t *testing.T, mock *llm.MockProvider, n int) string {
	t.Helper()
	if mock.CallCount() <= n {
		t.Fatalf("expected at least %d provider calls, got %d", n+1, mock.CallCount())
	}
	return mock.Calls[n].Messages[0].Content
}

// MustJSON encodes v, failing the test on error.
func MustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}
