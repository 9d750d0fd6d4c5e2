// Package rubric generates assessment rubrics for UK key stages.
package rubric

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

const (
	Name = "rubric-generator"

	defaultAssessmentType = "teacher"
	rubricVersion         = 1
)

// Response is the endpoint body.
type Response struct {
	ID         string              `json:"id"`
	CreatedAt  string              `json:"createdAt"`
	Metadata   Metadata            `json:"metadata"`
	Rubric     Rubric              `json:"rubric"`
	Version    int                 `json:"version"`
	Generation generation.Metadata `json:"generation"`
}

type Tool struct{}

func New() Tool { return Tool{} }

func (Tool) Name() string        { return Name }
func (Tool) Title() string       { return "Rubric Generator" }
func (Tool) Description() string { return "Assessment rubrics with feedback for every performance level" }
func (Tool) Required() []string  { return []string{"assignmentType", "keyStage", "criteria"} }

func (t Tool) Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	resp, err := t.run(ctx, gen, body)
	if err != nil {
		return nil, generation.WithHeadline(err, Name, "Failed to generate rubric")
	}
	return resp, nil
}

func (Tool) run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (*Response, error) {
	req, err := tools.Decode[Request](Name, body)
	if err != nil {
		return nil, err
	}
	if err := tools.Require(Name, "Missing required fields: assignmentType, keyStage, and criteria",
		tools.Field("assignmentType", tools.Text(req.AssignmentType)),
		tools.Field("keyStage", tools.Text(req.KeyStage)),
		tools.Field("criteria", tools.AnyText(req.Criteria)),
	); err != nil {
		return nil, err
	}
	if err := tools.CheckRequest(Name, requestSchema, body); err != nil {
		return nil, err
	}

	req.AssessmentType = tools.Or(req.AssessmentType, defaultAssessmentType)
	req.Criteria = tools.Compact(req.Criteria)

	res, err := generation.Generate(ctx, gen, generation.Job{
		Tool:     Name,
		System:   systemPrompt,
		Prompt:   buildUserMessage(req),
		Schema:   Schema,
		JSONMode: true,
	}, criteriaCount(len(req.Criteria)))
	if err != nil {
		return nil, err
	}

	r := res.Content.Rubric
	r.Instructions = forAssessment(r.Instructions, req.AssessmentType)

	resp := &Response{
		ID:        uuid.NewString(),
		CreatedAt: tools.Timestamp(res.Meta.Timestamp),
		Metadata: Metadata{
			AssignmentType:       req.AssignmentType,
			CustomAssignmentType: req.CustomAssignmentType,
			KeyStage:             req.KeyStage,
			YearGroup:            req.YearGroup,
			AssessmentType:       req.AssessmentType,
		},
		Rubric:     r,
		Version:    rubricVersion,
		Generation: res.Meta,
	}
	if err := tools.Conform(Name, ResponseSchema, resp.withoutGeneration()); err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *Response) withoutGeneration() any {
	out := *r
	return struct {
		ID        string   `json:"id"`
		CreatedAt string   `json:"createdAt"`
		Metadata  Metadata `json:"metadata"`
		Rubric    Rubric   `json:"rubric"`
		Version   int      `json:"version"`
	}{out.ID, out.CreatedAt, out.Metadata, out.Rubric, out.Version}
}

// forAssessment keeps teacher instructions always, and peer or self
// instructions only when that is how the work will be assessed.
func forAssessment(in Instructions, assessmentType string) Instructions {
	out := Instructions{Teacher: in.Teacher}
	switch assessmentType {
	case "peer":
		out.Peer = in.Peer
	case "self":
		out.Self = in.Self
	}
	return out
}

func criteriaCount(n int) generation.Check[Output] {
	return generation.CheckFunc("criteria-count", func(o *Output) error {
		if got := len(o.Rubric.Criteria); got != n {
			return fmt.Errorf("got %d criteria, want %d", got, n)
		}
		return nil
	})
}
