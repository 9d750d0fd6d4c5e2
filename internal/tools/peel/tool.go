// Package peel generates Point, Evidence, Explanation, Link paragraphs.
package peel

import (
	"context"
	"encoding/json"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

const Name = "peel-generator"

// Response is the endpoint body.
type Response struct {
	Content    Content             `json:"content"`
	Metadata   Metadata            `json:"metadata"`
	Generation generation.Metadata `json:"generation"`
}

type Tool struct{}

func New() Tool { return Tool{} }

func (Tool) Name() string        { return Name }
func (Tool) Title() string       { return "PEEL Paragraph Generator" }
func (Tool) Description() string { return "Point, Evidence, Explanation, Link paragraphs for a topic" }
func (Tool) Required() []string  { return []string{"topic"} }

func (t Tool) Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	resp, err := t.run(ctx, gen, body)
	if err != nil {
		return nil, generation.WithHeadline(err, Name, "Failed to generate PEEL paragraph")
	}
	return resp, nil
}

func (Tool) run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (*Response, error) {
	req, err := tools.Decode[Request](Name, body)
	if err != nil {
		return nil, err
	}
	if err := tools.Require(Name, "Missing required field: topic",
		tools.Field("topic", tools.Text(req.Topic)),
	); err != nil {
		return nil, err
	}
	if err := tools.CheckRequest(Name, requestSchema, body); err != nil {
		return nil, err
	}

	res, err := generation.Generate[Content](ctx, gen, generation.Job{
		Tool:    Name,
		System:  systemPrompt,
		Prompt:  buildUserMessage(req),
		Schema:  Schema,
		Parsers: parsers,
	})
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Content: res.Content,
		Metadata: Metadata{
			Topic:      req.Topic,
			Subject:    req.Subject,
			Complexity: req.Complexity,
			Timestamp:  tools.Timestamp(res.Meta.Timestamp),
		},
		Generation: res.Meta,
	}
	return resp, nil
}
