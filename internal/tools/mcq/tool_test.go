package mcq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/llm"
	"github.com/abhisek/edugen/internal/tools/tooltest"
)

func question(level string, answers, correct int) Question {
	q := Question{Text: "Which gas do plants absorb during photosynthesis?", TaxonomyLevel: level}
	for i := range answers {
		q.Answers = append(q.Answers, Answer{
			Text:        fmt.Sprintf("Option %d", i+1),
			IsCorrect:   i < correct,
			Explanation: "Because of the light-dependent reactions.",
		})
	}
	return q
}

func modelOutput(t *testing.T, questions ...Question) string {
	return tooltest.MustJSON(t, Set{Data: Data{
		Questions: questions,
		Metadata: Metadata{
			Topic:          "photosynthesis",
			Difficulty:     "medium",
			TotalQuestions: 99,
			TaxonomyLevels: []string{"whatever"},
			Timestamp:      "yesterday",
		},
	}})
}

const validRequest = `{"topic":"Photosynthesis","taxonomyLevels":["remember","apply"],"answersPerQuestion":4}`

func TestRun_Photosynthesis(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract,
		modelOutput(t, question("remember", 4, 1), question("apply", 4, 1)))

	out, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())

	resp := out.(*Response)
	require.NotEmpty(t, resp.Data.Questions)
	for _, q := range resp.Data.Questions {
		assert.Len(t, q.Answers, 4)
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		assert.Equal(t, 1, correct)
	}

	meta := resp.Data.Metadata
	assert.Equal(t, "Photosynthesis", meta.Topic)
	assert.Equal(t, 2, meta.TotalQuestions)
	assert.Equal(t, []string{"remember", "apply"}, meta.TaxonomyLevels)
	assert.NotEqual(t, "yesterday", meta.Timestamp)

	assert.NoError(t, llm.Validate(Schema, tooltest.Body(t, out)))
}

func TestRun_PromptCarriesRequest(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract, modelOutput(t, question("remember", 4, 1)))

	_, err := New().Run(context.Background(), gen, json.RawMessage(`{"topic":"Plate tectonics","taxonomyLevels":["analyse"]}`))
	require.NoError(t, err)

	prompt := tooltest.Prompt(t, mock, 0)
	assert.Contains(t, prompt, "Topic: Plate tectonics")
	assert.Contains(t, prompt, "Number of Options per Question: 4")
	assert.Contains(t, prompt, "Bloom's Taxonomy Levels: analyse")
	assert.True(t, mock.Calls[0].JSONMode)
	assert.True(t, strings.HasPrefix(mock.Calls[0].System, "You are an educational assessment expert"))
}

func TestRun_MissingFields(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"topic":"Photosynthesis"}`,
		`{"topic":"Photosynthesis","taxonomyLevels":[]}`,
		`{"topic":"  ","taxonomyLevels":["remember"]}`,
		`{"topic":"Photosynthesis","taxonomyLevels":[" "]}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			gen, mock := tooltest.Generator(t, generation.ModeExtract)
			_, err := New().Run(context.Background(), gen, json.RawMessage(body))

			var genErr *generation.Error
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, generation.KindMissingField, genErr.Kind)
			assert.Equal(t, "Missing required fields: topic and taxonomyLevels", genErr.Message)
			assert.Equal(t, 0, mock.CallCount())
		})
	}
}

func TestRun_AnswersOutOfRange(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract)
	_, err := New().Run(context.Background(), gen, json.RawMessage(`{"topic":"x","taxonomyLevels":["remember"],"answersPerQuestion":12}`))

	var genErr *generation.Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, generation.KindInvalidInput, genErr.Kind)
	assert.Equal(t, []string{"answersPerQuestion"}, genErr.Fields)
	assert.Equal(t, 0, mock.CallCount())
}

func TestRun_SemanticChecks(t *testing.T) {
	tests := []struct {
		name   string
		output Question
		check  string
	}{
		{"wrong answer count", question("remember", 3, 1), "answer-count"},
		{"two correct", question("remember", 4, 2), "single-correct"},
		{"none correct", question("remember", 4, 0), "single-correct"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, _ := tooltest.Generator(t, generation.ModeExtract, modelOutput(t, tt.output))
			_, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))

			var genErr *generation.Error
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, generation.KindValidation, genErr.Kind)
			assert.Equal(t, "Failed to generate MCQs", genErr.Message)

			var checkErr *generation.CheckError
			require.True(t, errors.As(err, &checkErr))
			assert.Equal(t, tt.check, checkErr.Check)
		})
	}
}

func TestRun_GarbageIsMalformed(t *testing.T) {
	gen, _ := tooltest.Generator(t, generation.ModeExtract, "Sorry, I can only help with maths.")
	out, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))

	assert.Nil(t, out)
	var genErr *generation.Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, generation.KindMalformedOutput, genErr.Kind)
	assert.Equal(t, 500, genErr.Kind.Status())
}

func TestRun_Constrained(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeConstrained, modelOutput(t, question("remember", 4, 1)))

	_, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))
	require.NoError(t, err)
	assert.Equal(t, Schema, mock.Calls[0].Schema)
}

func TestRun_UnknownKeysDropped(t *testing.T) {
	var set map[string]any
	require.NoError(t, json.Unmarshal([]byte(modelOutput(t, question("remember", 4, 1))), &set))
	q := set["data"].(map[string]any)["questions"].([]any)[0].(map[string]any)
	q["hint"] = "think about leaves"
	set["source"] = "textbook"
	output := tooltest.MustJSON(t, set)

	for _, mode := range []generation.Mode{generation.ModeExtract, generation.ModeConstrained} {
		t.Run(string(mode), func(t *testing.T) {
			gen, _ := tooltest.Generator(t, mode, output)
			out, err := New().Run(context.Background(), gen, json.RawMessage(validRequest))
			require.NoError(t, err)

			body := tooltest.MustJSON(t, tooltest.Body(t, out))
			assert.NotContains(t, body, "hint")
			assert.NotContains(t, body, "textbook")
		})
	}
}
