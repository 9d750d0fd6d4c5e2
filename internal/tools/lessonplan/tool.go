// Package lessonplan generates lesson plans, as markdown by default or as
// a structured plan on request.
package lessonplan

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

const Name = "lesson-plan"

// Response is the markdown body.
type Response struct {
	Content    string              `json:"content"`
	Metadata   Metadata            `json:"metadata"`
	Generation generation.Metadata `json:"generation"`
}

// StructuredResponse is the body when format is "structured".
type StructuredResponse struct {
	Plan       Plan                `json:"plan"`
	Metadata   Metadata            `json:"metadata"`
	Generation generation.Metadata `json:"generation"`
}

type Tool struct{}

func New() Tool { return Tool{} }

func (Tool) Name() string        { return Name }
func (Tool) Title() string       { return "Lesson Plan Generator" }
func (Tool) Description() string { return "Lesson plans in markdown or as a structured plan" }
func (Tool) Required() []string  { return []string{"prompt"} }

func (t Tool) Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	resp, err := t.run(ctx, gen, body)
	if err != nil {
		return nil, generation.WithHeadline(err, Name, "Failed to generate lesson plan")
	}
	return resp, nil
}

func (Tool) run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	req, err := tools.Decode[Request](Name, body)
	if err != nil {
		return nil, err
	}
	if err := tools.Require(Name, "Missing required field: prompt",
		tools.Field("prompt", tools.Text(req.Prompt)),
	); err != nil {
		return nil, err
	}
	if err := tools.CheckRequest(Name, requestSchema, body); err != nil {
		return nil, err
	}

	if tools.Or(req.Format, FormatMarkdown) == FormatStructured {
		return structured(ctx, gen, req)
	}

	res, err := generation.GenerateText(ctx, gen, generation.Job{
		Tool:   Name,
		Prompt: buildMarkdownMessage(req),
	})
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:    res.Content,
		Metadata:   metadata(req, res.Meta),
		Generation: res.Meta,
	}, nil
}

func structured(ctx context.Context, gen *generation.Generator, req *Request) (*StructuredResponse, error) {
	res, err := generation.Generate[Plan](ctx, gen, generation.Job{
		Tool:     Name,
		System:   structuredSystemPrompt,
		Prompt:   buildStructuredMessage(req),
		Schema:   Schema,
		JSONMode: true,
	})
	if err != nil {
		return nil, err
	}

	plan := res.Content
	pm := &plan.Metadata
	pm.CreatedAt = tools.Timestamp(res.Meta.Timestamp)
	pm.Subject = tools.Or(req.Subject, pm.Subject)
	pm.YearGroup = tools.Or(req.Grade, pm.YearGroup)
	if minutes, ok := parseMinutes(req.Duration); ok {
		pm.Duration = minutes
	}

	if err := tools.Conform(Name, Schema, plan); err != nil {
		return nil, err
	}
	return &StructuredResponse{
		Plan:       plan,
		Metadata:   metadata(req, res.Meta),
		Generation: res.Meta,
	}, nil
}

func metadata(req *Request, meta generation.Metadata) Metadata {
	return Metadata{
		Grade:     req.Grade,
		Subject:   req.Subject,
		Duration:  req.Duration,
		Timestamp: tools.Timestamp(meta.Timestamp),
	}
}

var leadingNumber = regexp.MustCompile(`^\s*(\d+)`)

// parseMinutes reads the number a free-text duration starts with, so
// "45 minutes" and "45" both give 45.
func parseMinutes(s string) (int, bool) {
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
