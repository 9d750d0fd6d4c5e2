// Package sow plans schemes of work: a sequence of lessons on one topic.
package sow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

const (
	Name = "sow-generator"

	defaultTotalLessons    = 6
	defaultLessonDuration  = 60
	defaultDifficultyLevel = "intermediate"
	defaultAuthor          = "edugen"
)

// Response is the endpoint body.
type Response struct {
	Scheme
	Generation generation.Metadata `json:"generation"`
}

type Tool struct{}

func New() Tool { return Tool{} }

func (Tool) Name() string        { return Name }
func (Tool) Title() string       { return "Scheme of Work Generator" }
func (Tool) Description() string { return "Lesson-by-lesson schemes of work for a topic and year group" }
func (Tool) Required() []string  { return []string{"subject", "topic", "ageGroup"} }

func (t Tool) Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	resp, err := t.run(ctx, gen, body)
	if err != nil {
		return nil, generation.WithHeadline(err, Name, "Failed to generate scheme of work")
	}
	return resp, nil
}

func (Tool) run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (*Response, error) {
	req, err := tools.Decode[Request](Name, body)
	if err != nil {
		return nil, err
	}
	if err := tools.Require(Name, "Missing required fields: subject, topic, and age group",
		tools.Field("subject", tools.Text(req.Subject)),
		tools.Field("topic", tools.Text(req.Topic)),
		tools.Field("ageGroup", req.AgeGroup != nil && req.AgeGroup.Year > 0),
	); err != nil {
		return nil, err
	}
	if err := tools.CheckRequest(Name, requestSchema, body); err != nil {
		return nil, err
	}
	applyDefaults(req)

	res, err := generation.Generate(ctx, gen, generation.Job{
		Tool:     Name,
		System:   systemPrompt,
		Prompt:   buildUserMessage(req),
		Schema:   Schema,
		JSONMode: true,
	}, lessonCount(req.TotalLessons), lessonSequence())
	if err != nil {
		return nil, err
	}

	s := res.Content
	d := &s.Data
	d.Subject, d.Topic = req.Subject, req.Topic
	d.AgeGroup.Year = req.AgeGroup.Year
	if len(req.AgeGroup.AgeRange) == 2 {
		d.AgeGroup.AgeRange = req.AgeGroup.AgeRange
	}
	author := defaultAuthor
	if d.Metadata != nil {
		author = tools.Or(d.Metadata.Author, defaultAuthor)
	}
	d.Metadata = &Metadata{
		Author:    author,
		CreatedAt: tools.Timestamp(res.Meta.Timestamp),
		Version:   res.Meta.Version,
	}

	if err := tools.Conform(Name, ResponseSchema, s); err != nil {
		return nil, err
	}
	return &Response{Scheme: s, Generation: res.Meta}, nil
}

func applyDefaults(req *Request) {
	if req.TotalLessons == 0 {
		req.TotalLessons = defaultTotalLessons
	}
	if req.LessonDuration == 0 {
		req.LessonDuration = defaultLessonDuration
	}
	if req.UserPreferences == nil {
		req.UserPreferences = &Preferences{}
	}
	req.UserPreferences.EmphasisAreas = tools.Compact(req.UserPreferences.EmphasisAreas)
	req.UserPreferences.DifficultyLevel = tools.Or(req.UserPreferences.DifficultyLevel, defaultDifficultyLevel)
}

func lessonCount(n int) generation.Check[Scheme] {
	return generation.CheckFunc("lesson-count", func(s *Scheme) error {
		if got := len(s.Data.Lessons); got != n {
			return fmt.Errorf("got %d lessons, want %d", got, n)
		}
		return nil
	})
}

func lessonSequence() generation.Check[Scheme] {
	return generation.CheckFunc("lesson-sequence", func(s *Scheme) error {
		for i, l := range s.Data.Lessons {
			if l.LessonNumber != i+1 {
				return fmt.Errorf("lesson %d is numbered %d", i+1, l.LessonNumber)
			}
		}
		return nil
	})
}
