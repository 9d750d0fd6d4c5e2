package promptgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/llm"
	"github.com/abhisek/edugen/internal/tools/tooltest"
)

func refined(level string, load float64) RefinedPrompt {
	return RefinedPrompt{
		PromptText: "Describe how the water cycle moves water between the ocean and the land.",
		Explanation: Explanation{
			Explanation: "Builds recall before asking for analysis.",
			FocusAreas:  []string{"evaporation", "condensation"},
			ComplexityLevel: ComplexityLevel{
				BloomsLevel:   level,
				CognitiveLoad: load,
			},
		},
	}
}

func output(t *testing.T, prompts ...RefinedPrompt) string {
	return tooltest.MustJSON(t, Output{OriginalPrompt: "The water cycle", RefinedPrompts: prompts})
}

func TestRun(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract,
		output(t, refined("Knowledge", 1), refined("Application", 3), refined("Evaluation", 5)))

	out, err := New().Run(context.Background(), gen, json.RawMessage(`{"topic":"The water cycle","grade":"Year 7","subject":"Geography"}`))
	require.NoError(t, err)

	resp := out.(*Response)
	assert.Len(t, resp.RefinedPrompts, 3)
	assert.Equal(t, "1.0.0", resp.Metadata.Version)
	assert.NotEmpty(t, resp.Metadata.GeneratedAt)
	assert.NoError(t, llm.Validate(ResponseSchema, tooltest.Body(t, out)))

	prompt := tooltest.Prompt(t, mock, 0)
	assert.Contains(t, prompt, "Topic: The water cycle")
	assert.Contains(t, prompt, "Grade Level: Year 7")
	assert.NotContains(t, prompt, "Skill Level:")
	assert.True(t, strings.Contains(mock.Calls[0].System, "exactly three"))
}

func TestRun_OriginalPromptAlias(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract,
		output(t, refined("Knowledge", 1), refined("Analysis", 3), refined("Synthesis", 4)))

	_, err := New().Run(context.Background(), gen, json.RawMessage(`{"originalPrompt":"Fractions"}`))
	require.NoError(t, err)
	assert.Contains(t, tooltest.Prompt(t, mock, 0), "Topic: Fractions")
}

func TestRun_NeedsExactlyThree(t *testing.T) {
	gen, _ := tooltest.Generator(t, generation.ModeExtract, output(t, refined("Knowledge", 1), refined("Analysis", 3)))

	_, err := New().Run(context.Background(), gen, json.RawMessage(`{"topic":"Fractions"}`))
	var verr *llm.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "refinedPrompts", verr.Field)

	var genErr *generation.Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "Failed to generate educational prompt", genErr.Message)
}

func TestRun_BloomsLevelsMustDiffer(t *testing.T) {
	gen, _ := tooltest.Generator(t, generation.ModeExtract,
		output(t, refined("Knowledge", 1), refined("Knowledge", 2), refined("Evaluation", 5)))

	_, err := New().Run(context.Background(), gen, json.RawMessage(`{"topic":"Fractions"}`))
	var checkErr *generation.CheckError
	require.True(t, errors.As(err, &checkErr))
	assert.Equal(t, "distinct-levels", checkErr.Check)
}

func TestRun_CognitiveLoadOutOfRange(t *testing.T) {
	gen, _ := tooltest.Generator(t, generation.ModeExtract,
		output(t, refined("Knowledge", 1), refined("Analysis", 3), refined("Evaluation", 7)))

	_, err := New().Run(context.Background(), gen, json.RawMessage(`{"topic":"Fractions"}`))
	var verr *llm.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "refinedPrompts[2].explanation.complexityLevel.cognitiveLoad", verr.Field)
}

func TestRun_MissingTopic(t *testing.T) {
	for _, body := range []string{`{}`, `{"topic":" "}`, `{"originalPrompt":""}`} {
		gen, mock := tooltest.Generator(t, generation.ModeExtract)
		_, err := New().Run(context.Background(), gen, json.RawMessage(body))

		var genErr *generation.Error
		require.True(t, errors.As(err, &genErr), body)
		assert.Equal(t, "Missing required field: topic", genErr.Message)
		assert.Equal(t, 0, mock.CallCount())
	}
}

func TestRun_TopicTooLong(t *testing.T) {
	gen, mock := tooltest.Generator(t, generation.ModeExtract)
	body := tooltest.MustJSON(t, map[string]string{"topic": strings.Repeat("a", 501)})

	_, err := New().Run(context.Background(), gen, json.RawMessage(body))
	var genErr *generation.Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, generation.KindInvalidInput, genErr.Kind)
	assert.Equal(t, 0, mock.CallCount())
}
