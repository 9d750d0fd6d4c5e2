package rubric

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/llm"
	"github.com/abhisek/edugen/internal/tools/tooltest"
)

func criterion(name string) Criterion {
	levels := make(map[string]Feedback, len(performanceLevels))
	for _, l := range performanceLevels {
		levels[l] = Feedback{
			Text:            "Feedback at " + l,
			Suggestions:     []string{"Use more evidence"},
			ActionableSteps: []string{"Add one quotation per paragraph"},
		}
	}
	return Criterion{Name: name, Description: "How well the work handles " + name, FeedbackByLevel: levels}
}

func modelOutput(t *testing.T, criteria ...Criterion) string {
	return tooltest.MustJSON(t, Output{Rubric: Rubric{
		Criteria: criteria,
		Instructions: Instructions{
			Teacher: []string{"Mark against each criterion."},
			Peer:    []string{"Read your partner's essay twice."},
			Self:    []string{"Highlight your strongest paragraph."},
		},
		ReflectionPrompts: []string{"What would you change next time?"},
	}})
}

const validRequest = `{
	"assignmentType": "analytical_essay",
	"keyStage": "ks4",
	"yearGroup": 10,
	"assessmentType": "peer",
	"criteria": ["Argument", "Use of evidence"],
	"additionalInstructions": "Focus on Macbeth"
}`

func TestRun(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract, modelOutput(t, criterion("Argument"), criterion("Use of evidence")))

	out, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))
	require.NoError(t, err)
	require.Equal(t, 1, mock.CallCount())

	resp := out.(*Response)
	_, err = uuid.Parse(resp.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Version)
	assert.Equal(t, Metadata{AssignmentType: "analytical_essay", KeyStage: "ks4", YearGroup: 10, AssessmentType: "peer"}, resp.Metadata)
	assert.Equal(t, []string{"Read your partner's essay twice."}, resp.Rubric.Instructions.Peer)
	assert.Nil(t, resp.Rubric.Instructions.Self)
	assert.NoError(t, llm.Validate(ResponseSchema, tooltest.Body(t, out)))

	prompt := tooltest.Prompt(t, mock, 0)
	assert.Contains(t, prompt, "- Type: analytical_essay")
	assert.Contains(t, prompt, "- Year Group: 10")
	assert.Contains(t, prompt, "Required Criteria: Argument, Use of evidence")
	assert.Contains(t, prompt, "Additional Instructions: Focus on Macbeth")
	assert.NotContains(t, prompt, "Custom Type")
}

func TestRun_DefaultsToTeacherAssessment(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract, modelOutput(t, criterion("Delivery")))

	out, err := New().Run(context.Background(), gen,
		json.RawMessage(`{"assignmentType":"presentation","keyStage":"ks3","criteria":["Delivery"]}`))
	require.NoError(t, err)

	resp := out.(*Response)
	assert.Equal(t, "teacher", resp.Metadata.AssessmentType)
	assert.Nil(t, resp.Rubric.Instructions.Peer)
	assert.Nil(t, resp.Rubric.Instructions.Self)
	assert.Contains(t, tooltest.Prompt(t, mock, 0), "- Assessment Type: teacher")
}

func TestRun_UniqueIDs(t *testing.T) {
	out := modelOutput(t, criterion("Argument"), criterion("Use of evidence"))
	gen, _ := tooltest.Generator(t, generation.ModeExtract, out, out)

	a, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))
	require.NoError(t, err)
	b, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))
	require.NoError(t, err)

	assert.NotEqual(t, a.(*Response).ID, b.(*Response).ID)
	assert.Equal(t, a.(*Response).Rubric, b.(*Response).Rubric)
}

func TestRun_EmptyBody(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract)
	_, err := New().Run(context.Background(), gen, json.RawMessage(`{}`))

	var genErr *generation.Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, 400, genErr.Kind.Status())
	assert.Equal(t, "Missing required fields: assignmentType, keyStage, and criteria", genErr.Message)
	assert.Equal(t, []string{"assignmentType", "keyStage", "criteria"}, genErr.Fields)
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_InvalidRequest(t *testing.T) {
	tests := []struct {
		body  string
		field string
	}{
		{`{"assignmentType":"poem","keyStage":"ks4","criteria":["a"]}`, "assignmentType"},
		{`{"assignmentType":"debate","keyStage":"ks2","criteria":["a"]}`, "keyStage"},
		{`{"assignmentType":"debate","keyStage":"ks4","yearGroup":6,"criteria":["a"]}`, "yearGroup"},
		{`{"assignmentType":"debate","keyStage":"ks4","assessmentType":"parent","criteria":["a"]}`, "assessmentType"},
		{`{"assignmentType":"debate","keyStage":"ks4","criteria":["a","b","c","d","e","f","g"]}`, "criteria"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			gen, mock := tooltest.Generator(t, generation.ModeExtract)
			_, err := New().Run(context.Background(), gen, json.RawMessage(tt.body))

			var genErr *generation.Error
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, generation.KindInvalidInput, genErr.Kind)
			assert.Equal(t, []string{tt.field}, genErr.Fields)
			assert.Equal(t, 0, mock.CallCount())
		})
	}
}

func TestRun_MissingPerformanceLevel(t *testing.T) {
	c := criterion("Argument")
	delete(c.FeedbackByLevel, "needs_improvement")
	gen, _ := tooltest.Generator(t, generation.ModeExtract, modelOutput(t, c, criterion("Use of evidence")))

	_, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))

	var genErr *generation.Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, generation.KindValidation, genErr.Kind)
	assert.Equal(t, "Failed to generate rubric", genErr.Message)

	var verr *llm.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "rubric.criteria[0].feedbackByLevel.needs_improvement", verr.Field)
}

func TestRun_CriteriaCount(t *testing.T) {
	gen, _ := tooltest.Generator(t, generation.ModeExtract, modelOutput(t, criterion("Argument")))
	_, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))

	var checkErr *generation.CheckError
	require.True(t, errors.As(err, &checkErr))
	assert.Equal(t, "criteria-count", checkErr.Check)
}
