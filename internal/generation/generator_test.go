package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/edugen/internal/extract"
	"github.com/abhisek/edugen/internal/llm"
)

type paragraph struct {
	Point    string `json:"point"`
	Evidence string `json:"evidence"`
}

var paragraphSchema = &llm.Schema{
	Name:        "test-paragraph",
	Description: "A short argument",
	Definition: llm.Obj(map[string]any{
		"point":    llm.StrLen("", 5, 0),
		"evidence": llm.StrLen("", 5, 0),
	}, "point", "evidence"),
}

const validParagraph = `{"point":"Trees store carbon","evidence":"A mature oak absorbs 22kg of CO2 a year"}`

func testJob() Job {
	return Job{
		Tool:    "test-tool",
		System:  "You write arguments.",
		Prompt:  "Write about trees.",
		Schema:  paragraphSchema,
		Parsers: extract.WithFields(extract.Field{Key: "point", Label: "Point"}, extract.Field{Key: "evidence", Label: "Evidence"}),
	}
}

func newTestGenerator(mode Mode, responses ...llm.MockResponse) (*Generator, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	cfg := DefaultConfig()
	cfg.Mode = mode
	g := New(mock, cfg, nil)
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	g.now = func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	}
	return g, mock
}

func TestGenerate_DirectJSON(t *testing.T) {
	g, mock := newTestGenerator(ModeExtract, llm.MockText(validParagraph))

	res, err := Generate[paragraph](context.Background(), g, testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Content.Point != "Trees store carbon" {
		t.Fatalf("unexpected content %+v", res.Content)
	}
	if res.Meta.Strategy != "direct" || res.Meta.Mode != ModeExtract {
		t.Fatalf("unexpected metadata %+v", res.Meta)
	}
	if res.Meta.Version != "1.0.0" || res.Meta.Model != "mock" {
		t.Fatalf("unexpected metadata %+v", res.Meta)
	}
	if res.Meta.ProcessingTimeMs != 250 {
		t.Fatalf("expected 250ms processing time, got %d", res.Meta.ProcessingTimeMs)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.CallCount())
	}
}

func TestGenerate_PromptCarriesSchemaDescription(t *testing.T) {
	g, mock := newTestGenerator(ModeExtract, llm.MockText(validParagraph))
	job := testJob()
	job.JSONMode = true

	if _, err := Generate[paragraph](context.Background(), g, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.System != "You write arguments." {
		t.Fatalf("unexpected system %q", req.System)
	}
	if req.Schema != nil {
		t.Fatal("extract mode must not send the schema to the provider")
	}
	if !req.JSONMode {
		t.Fatal("expected JSON mode hint")
	}
	if req.Temperature != 0.7 {
		t.Fatalf("expected temperature 0.7, got %v", req.Temperature)
	}
	prompt := req.Messages[0].Content
	if !strings.HasPrefix(prompt, "Write about trees.") || !strings.Contains(prompt, "- point (string, required") {
		t.Fatalf("prompt missing template or schema description:\n%s", prompt)
	}
}

func TestGenerate_EmbeddedAndScrapedFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		strategy string
	}{
		{"fenced", "Here you go:\n```json\n" + validParagraph + "\n```", "embedded"},
		{"labelled", "Point: Trees store carbon\nEvidence: Oaks absorb 22kg a year", "fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGenerator(ModeExtract, llm.MockText(tt.text))
			res, err := Generate[paragraph](context.Background(), g, testJob())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Meta.Strategy != tt.strategy {
				t.Fatalf("expected strategy %q, got %q", tt.strategy, res.Meta.Strategy)
			}
		})
	}
}

func TestGenerate_Garbage(t *testing.T) {
	g, _ := newTestGenerator(ModeExtract, llm.MockText("As an AI I cannot write that."))

	res, err := Generate[paragraph](context.Background(), g, testJob())
	if res != nil {
		t.Fatal("expected no result")
	}
	var genErr *Error
	if !errors.As(err, &genErr) || genErr.Kind != KindMalformedOutput {
		t.Fatalf("expected malformed output error, got: %v", err)
	}
	if genErr.Kind.Status() != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", genErr.Kind.Status())
	}
	if !strings.Contains(genErr.Details(), "fields:") {
		t.Fatalf("expected every attempt in details, got %q", genErr.Details())
	}
}

func TestGenerate_SchemaViolation(t *testing.T) {
	g, _ := newTestGenerator(ModeExtract, llm.MockText(`{"point":"Trees store carbon","evidence":"no"}`))

	_, err := Generate[paragraph](context.Background(), g, testJob())
	var genErr *Error
	if !errors.As(err, &genErr) || genErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got: %v", err)
	}
	var verr *llm.ValidationError
	if !errors.As(err, &verr) || verr.Field != "evidence" {
		t.Fatalf("expected evidence to be named, got: %v", err)
	}
}

func TestGenerate_Constrained(t *testing.T) {
	g, mock := newTestGenerator(ModeConstrained, llm.MockResponse{Content: json.RawMessage(validParagraph)})

	res, err := Generate[paragraph](context.Background(), g, testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].Schema != paragraphSchema {
		t.Fatal("expected schema to be passed to the provider")
	}
	if res.Meta.Strategy != "constrained" {
		t.Fatalf("expected constrained strategy, got %q", res.Meta.Strategy)
	}
}

func TestGenerate_ExtraKeysAccepted(t *testing.T) {
	const withExtra = `{"point":"Trees store carbon","evidence":"A mature oak absorbs 22kg of CO2 a year","tone":"formal"}`
	for _, mode := range []Mode{ModeExtract, ModeConstrained} {
		t.Run(string(mode), func(t *testing.T) {
			g, _ := newTestGenerator(mode, llm.MockText(withExtra))
			res, err := Generate[paragraph](context.Background(), g, testJob())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out, _ := json.Marshal(res.Content)
			if strings.Contains(string(out), "tone") {
				t.Fatalf("unknown key leaked into content: %s", out)
			}
		})
	}
}

func TestGenerate_ConstrainedRejectedByProvider(t *testing.T) {
	g, _ := newTestGenerator(ModeConstrained, llm.MockResponse{Content: json.RawMessage(`{"point":"x"}`)})

	_, err := Generate[paragraph](context.Background(), g, testJob())
	var genErr *Error
	if !errors.As(err, &genErr) || genErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got: %v", err)
	}
}

func TestGenerate_ProviderFailures(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		want Kind
	}{
		{"unavailable", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}}, KindProvider},
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{}}, KindProvider},
		{"empty", llm.MockText(""), KindEmptyResponse},
		{"configuration", llm.MockResponse{Err: &llm.ErrConfiguration{Setting: "OPENAI_API_KEY", Reason: "not set"}}, KindConfiguration},
		{"truncated", llm.MockResponse{Err: &llm.ErrMaxTokensExceeded{Content: []byte(`{"point":"Trees st`)}}, KindMalformedOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGenerator(ModeExtract, tt.resp)
			_, err := Generate[paragraph](context.Background(), g, testJob())
			var genErr *Error
			if !errors.As(err, &genErr) || genErr.Kind != tt.want {
				t.Fatalf("expected %s, got: %v", tt.want, err)
			}
			if genErr.Tool != "test-tool" {
				t.Fatalf("expected tool name on error, got %q", genErr.Tool)
			}
		})
	}
}

func TestGenerate_ChecksRunInOrder(t *testing.T) {
	var ran []string
	first := CheckFunc("first", func(p *paragraph) error {
		ran = append(ran, "first")
		return nil
	})
	second := CheckFunc("second", func(p *paragraph) error {
		ran = append(ran, "second")
		return fmt.Errorf("point %q is too vague", p.Point)
	})
	third := CheckFunc("third", func(p *paragraph) error {
		ran = append(ran, "third")
		return nil
	})

	g, _ := newTestGenerator(ModeExtract, llm.MockText(validParagraph))
	_, err := Generate(context.Background(), g, testJob(), first, second, third)

	var checkErr *CheckError
	if !errors.As(err, &checkErr) || checkErr.Check != "second" {
		t.Fatalf("expected second check to fail, got: %v", err)
	}
	if strings.Join(ran, ",") != "first,second" {
		t.Fatalf("expected to stop after the failing check, ran %v", ran)
	}
}

func TestGenerate_MissingSchema(t *testing.T) {
	g, mock := newTestGenerator(ModeExtract, llm.MockText(validParagraph))
	job := testJob()
	job.Schema = nil

	_, err := Generate[paragraph](context.Background(), g, job)
	var genErr *Error
	if !errors.As(err, &genErr) || genErr.Kind != KindConfiguration {
		t.Fatalf("expected configuration error, got: %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("expected no provider call")
	}
}

func TestGenerate_SameOutputSameContent(t *testing.T) {
	g, _ := newTestGenerator(ModeExtract, llm.MockText(validParagraph), llm.MockText(validParagraph))

	a, err := Generate[paragraph](context.Background(), g, testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate[paragraph](context.Background(), g, testJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Content != b.Content || string(a.Raw) != string(b.Raw) {
		t.Fatalf("expected identical content, got %+v and %+v", a.Content, b.Content)
	}
	if a.Meta.Timestamp.Equal(b.Meta.Timestamp) {
		t.Fatal("expected metadata timestamps to differ")
	}
}

func TestGenerateText_NormalisesWhitespace(t *testing.T) {
	g, mock := newTestGenerator(ModeConstrained, llm.MockText("\n\n# Lesson Plan\n\n\n\n## Objectives\n\n\n- one\n  "))

	res, err := GenerateText(context.Background(), g, Job{Tool: "lesson-plan", Prompt: "Plan a lesson."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Content != "# Lesson Plan\n\n## Objectives\n\n- one" {
		t.Fatalf("unexpected content %q", res.Content)
	}
	if res.Meta.Strategy != "text" {
		t.Fatalf("expected text strategy, got %q", res.Meta.Strategy)
	}
	if mock.Calls[0].Schema != nil || mock.Calls[0].Messages[0].Content != "Plan a lesson." {
		t.Fatal("text jobs send the prompt unchanged and without a schema")
	}
}

func TestGenerateText_Blank(t *testing.T) {
	g, _ := newTestGenerator(ModeExtract, llm.MockText("\n \n"))

	_, err := GenerateText(context.Background(), g, Job{Tool: "lesson-plan", Prompt: "Plan a lesson."})
	var genErr *Error
	if !errors.As(err, &genErr) || genErr.Kind != KindEmptyResponse {
		t.Fatalf("expected empty response error, got: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	bad := []func(*Config){
		func(c *Config) { c.Mode = "hybrid" },
		func(c *Config) { c.MaxTokens = -1 },
		func(c *Config) { c.Temperature = 1.5 },
	}
	for i, mut := range bad {
		cfg := DefaultConfig()
		mut(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}
