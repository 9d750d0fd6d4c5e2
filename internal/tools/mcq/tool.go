// Package mcq generates multiple choice question sets aligned to Bloom's
// taxonomy levels.
package mcq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

const (
	Name = "mcq-generator"

	defaultAnswersPerQuestion = 4
)

// Response is the endpoint body.
type Response struct {
	Set
	Generation generation.Metadata `json:"generation"`
}

type Tool struct{}

func New() Tool { return Tool{} }

func (Tool) Name() string        { return Name }
func (Tool) Title() string       { return "MCQ Generator" }
func (Tool) Description() string { return "Multiple choice questions across Bloom's taxonomy levels" }
func (Tool) Required() []string  { return []string{"topic", "taxonomyLevels"} }

func (t Tool) Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	resp, err := t.run(ctx, gen, body)
	if err != nil {
		return nil, generation.WithHeadline(err, Name, "Failed to generate MCQs")
	}
	return resp, nil
}

func (Tool) run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (*Response, error) {
	req, err := tools.Decode[Request](Name, body)
	if err != nil {
		return nil, err
	}
	req.TaxonomyLevels = tools.Compact(req.TaxonomyLevels)
	if err := tools.Require(Name, "Missing required fields: topic and taxonomyLevels",
		tools.Field("topic", tools.Text(req.Topic)),
		tools.Field("taxonomyLevels", len(req.TaxonomyLevels) > 0),
	); err != nil {
		return nil, err
	}
	if err := tools.CheckRequest(Name, requestSchema, body); err != nil {
		return nil, err
	}
	if req.AnswersPerQuestion == 0 {
		req.AnswersPerQuestion = defaultAnswersPerQuestion
	}

	res, err := generation.Generate(ctx, gen, generation.Job{
		Tool:     Name,
		System:   systemPrompt,
		Prompt:   buildUserMessage(req),
		Schema:   Schema,
		JSONMode: true,
	}, answerCount(req.AnswersPerQuestion), singleCorrect())
	if err != nil {
		return nil, err
	}

	set := res.Content
	set.Data.Metadata.Topic = req.Topic
	set.Data.Metadata.TaxonomyLevels = req.TaxonomyLevels
	set.Data.Metadata.TotalQuestions = len(set.Data.Questions)
	set.Data.Metadata.Timestamp = tools.Timestamp(res.Meta.Timestamp)

	return &Response{Set: set, Generation: res.Meta}, nil
}

func answerCount(n int) generation.Check[Set] {
	return generation.CheckFunc("answer-count", func(s *Set) error {
		for i, q := range s.Data.Questions {
			if len(q.Answers) != n {
				return fmt.Errorf("question %d has %d answers, want %d", i+1, len(q.Answers), n)
			}
		}
		return nil
	})
}

func singleCorrect() generation.Check[Set] {
	return generation.CheckFunc("single-correct", func(s *Set) error {
		for i, q := range s.Data.Questions {
			correct := 0
			for _, a := range q.Answers {
				if a.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				return fmt.Errorf("question %d has %d correct answers, want exactly 1", i+1, correct)
			}
		}
		return nil
	})
}
