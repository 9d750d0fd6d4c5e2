// Package quiz generates quizzes with per-question feedback.
package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

const (
	Name = "quiz-generator"

	defaultDifficulty   = "medium"
	defaultQuestionType = "multiple_choice"
)

// Response is the endpoint body.
type Response struct {
	Quiz
	Generation generation.Metadata `json:"generation"`
}

type Tool struct{}

func New() Tool { return Tool{} }

func (Tool) Name() string        { return Name }
func (Tool) Title() string       { return "Quiz Generator" }
func (Tool) Description() string { return "Quizzes with feedback for every question" }
func (Tool) Required() []string  { return []string{"topic", "questionCount"} }

func (t Tool) Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	resp, err := t.run(ctx, gen, body)
	if err != nil {
		return nil, generation.WithHeadline(err, Name, "Failed to generate quiz")
	}
	return resp, nil
}

func (Tool) run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (*Response, error) {
	req, err := tools.Decode[Request](Name, body)
	if err != nil {
		return nil, err
	}
	if err := tools.Require(Name, "Missing required fields: topic and questionCount",
		tools.Field("topic", tools.Text(req.Topic)),
		tools.Field("questionCount", req.QuestionCount != 0),
	); err != nil {
		return nil, err
	}
	if err := tools.CheckRequest(Name, requestSchema, body); err != nil {
		return nil, err
	}

	req.Difficulty = tools.Or(req.Difficulty, defaultDifficulty)
	req.QuestionTypes = tools.Compact(req.QuestionTypes)
	if len(req.QuestionTypes) == 0 {
		req.QuestionTypes = []string{defaultQuestionType}
	}
	for _, qt := range req.QuestionTypes {
		if !slices.Contains(questionTypes, qt) {
			return nil, generation.Invalid(Name, fmt.Errorf("questionTypes: unknown question type %q", qt), "questionTypes")
		}
	}

	res, err := generation.Generate(ctx, gen, generation.Job{
		Tool:   Name,
		System: systemPrompt,
		Prompt: buildUserMessage(req),
		Schema: Schema,
	}, questionCount(req.QuestionCount), allowedTypes(req.QuestionTypes), oneCorrectOption())
	if err != nil {
		return nil, err
	}

	q := res.Content
	q.Metadata.CreatedAt = tools.Timestamp(res.Meta.Timestamp)
	if tools.Text(req.Subject) {
		q.Metadata.Subject = req.Subject
	}
	if tools.Text(req.GradeLevel) {
		q.Metadata.GradeLevel = req.GradeLevel
	}
	q.Metadata.TotalPoints = 0
	for _, question := range q.Questions {
		q.Metadata.TotalPoints += question.Points
	}

	return &Response{Quiz: q, Generation: res.Meta}, nil
}

func questionCount(n int) generation.Check[Quiz] {
	return generation.CheckFunc("question-count", func(q *Quiz) error {
		if len(q.Questions) != n {
			return fmt.Errorf("got %d questions, want %d", len(q.Questions), n)
		}
		return nil
	})
}

func allowedTypes(types []string) generation.Check[Quiz] {
	return generation.CheckFunc("question-types", func(q *Quiz) error {
		for i, question := range q.Questions {
			if !slices.Contains(types, question.Type) {
				return fmt.Errorf("question %d is %s, which was not requested", i+1, question.Type)
			}
		}
		return nil
	})
}

// oneCorrectOption applies to closed questions; short answers list
// acceptable answers and may mark several correct.
func oneCorrectOption() generation.Check[Quiz] {
	return generation.CheckFunc("one-correct-option", func(q *Quiz) error {
		for i, question := range q.Questions {
			if question.Type == "short_answer" {
				continue
			}
			correct := 0
			for _, o := range question.Options {
				if o.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				return fmt.Errorf("question %d has %d correct options, want exactly 1", i+1, correct)
			}
		}
		return nil
	})
}
