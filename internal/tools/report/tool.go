// Package report writes student progress reports from a teacher's notes.
package report

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

const (
	Name = "report-generator"

	defaultWordCount = 300
	defaultStudentID = "Student"
)

// Response is the endpoint body.
type Response struct {
	Report
	Generation generation.Metadata `json:"generation"`
}

type Tool struct{}

func New() Tool { return Tool{} }

func (Tool) Name() string        { return Name }
func (Tool) Title() string       { return "Student Report Generator" }
func (Tool) Description() string { return "Progress reports built from strengths, development areas and progress" }
func (Tool) Required() []string  { return []string{"studentDetails"} }

func (t Tool) Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error) {
	resp, err := t.run(ctx, gen, body)
	if err != nil {
		return nil, generation.WithHeadline(err, Name, "Failed to generate report")
	}
	return resp, nil
}

func (Tool) run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (*Response, error) {
	req, err := tools.Decode[Request](Name, body)
	if err != nil {
		return nil, err
	}
	d := req.StudentDetails
	if err := tools.Require(Name, "Missing required student details",
		tools.Field("studentDetails", d != nil),
	); err != nil {
		return nil, err
	}
	if err := tools.CheckRequest(Name, requestSchema, body); err != nil {
		return nil, err
	}

	wordCount := defaultWordCount
	if req.Config != nil && req.Config.WordCount > 0 {
		wordCount = req.Config.WordCount
	}
	studentID := tools.Or(d.StudentID, defaultStudentID)

	res, err := generation.Generate[Report](ctx, gen, generation.Job{
		Tool:     Name,
		System:   systemPrompt,
		Prompt:   buildUserMessage(d, wordCount, studentID),
		Schema:   Schema,
		Parsers:  parsers,
		JSONMode: true,
	})
	if err != nil {
		return nil, err
	}

	r := res.Content
	out := &r.Data.Output
	if !tools.Text(out.CompleteReport) {
		s := out.ReportSections
		out.CompleteReport = strings.Join([]string{s.OverarchingAssessment, s.Target, s.SupportiveEndNote}, "\n\n")
	}
	out.Metadata = &Metadata{
		StudentID:   studentID,
		GeneratedAt: tools.Timestamp(res.Meta.Timestamp),
		WordCount:   wordCount,
		Version:     res.Meta.Version,
	}

	if err := tools.Conform(Name, ResponseSchema, r); err != nil {
		return nil, err
	}
	return &Response{Report: r, Generation: res.Meta}, nil
}
