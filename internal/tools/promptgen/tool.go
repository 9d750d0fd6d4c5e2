// Package promptgen refines a teacher's topic into three educational
// prompts at different cognitive levels.
package promptgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

const Name = "prompt-generator"

// Response is the endpoint body.
type Response struct {
	Output
	Metadata   Metadata            `json:"metadata"`
	Generation generation.Metadata `json:"generation"`
}

type Tool struct{}

func New() Tool { return Tool{} }

func (Tool) Name() string        { return Name }
func (Tool) Title() string       { return "Educational Prompt Generator" }
func (Tool) Description() string { return "Three refined prompts at different Bloom's levels" }
func (Tool) Required() []string  { return []string{"topic"} }

func (t Tool) Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	resp, err := t.run(ctx, gen, body)
	if err != nil {
		return nil, generation.WithHeadline(err, Name, "Failed to generate educational prompt")
	}
	return resp, nil
}

func (Tool) run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (*Response, error) {
	req, err := tools.Decode[Request](Name, body)
	if err != nil {
		return nil, err
	}
	req.Topic = tools.Or(req.Topic, req.OriginalPrompt)
	if err := tools.Require(Name, "Missing required field: topic",
		tools.Field("topic", tools.Text(req.Topic)),
	); err != nil {
		return nil, err
	}
	if err := tools.CheckRequest(Name, requestSchema, body); err != nil {
		return nil, err
	}

	res, err := generation.Generate(ctx, gen, generation.Job{
		Tool:     Name,
		System:   systemPrompt,
		Prompt:   buildUserMessage(req),
		Schema:   Schema,
		JSONMode: true,
	}, distinctLevels())
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Output: res.Content,
		Metadata: Metadata{
			GeneratedAt:      tools.Timestamp(res.Meta.Timestamp),
			Version:          res.Meta.Version,
			ProcessingTimeMs: res.Meta.ProcessingTimeMs,
		},
		Generation: res.Meta,
	}
	if err := tools.Conform(Name, ResponseSchema, resp.withoutGeneration()); err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *Response) withoutGeneration() any {
	return struct {
		Output
		Metadata Metadata `json:"metadata"`
	}{r.Output, r.Metadata}
}

func distinctLevels() generation.Check[Output] {
	return generation.CheckFunc("distinct-levels", func(o *Output) error {
		seen := make(map[string]int, len(o.RefinedPrompts))
		for i, p := range o.RefinedPrompts {
			level := p.Explanation.ComplexityLevel.BloomsLevel
			if prev, dup := seen[level]; dup {
				return fmt.Errorf("prompts %d and %d share Bloom's level %s", prev+1, i+1, level)
			}
			seen[level] = i
		}
		return nil
	})
}
