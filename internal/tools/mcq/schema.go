package mcq

import "github.com/abhisek/edugen/internal/llm"

// Request is the MCQ generator form.
type Request struct {
	Topic              string   `json:"topic,omitempty"`
	AnswersPerQuestion int      `json:"answersPerQuestion,omitempty" jsonschema:"minimum=2,maximum=6"`
	TaxonomyLevels     []string `json:"taxonomyLevels,omitempty"`
}

var requestSchema = llm.SchemaFor[Request]("mcq-request", "MCQ generator request")

type Answer struct {
	Text        string `json:"text"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation,omitempty"`
}

type Question struct {
	Text          string   `json:"text"`
	TaxonomyLevel string   `json:"taxonomyLevel"`
	Answers       []Answer `json:"answers"`
	Explanation   string   `json:"explanation,omitempty"`
}

type Metadata struct {
	Topic          string   `json:"topic"`
	Difficulty     string   `json:"difficulty"`
	TotalQuestions int      `json:"totalQuestions"`
	TaxonomyLevels []string `json:"taxonomyLevels"`
	Timestamp      string   `json:"timestamp"`
}

type Data struct {
	Questions []Question `json:"questions"`
	Metadata  Metadata   `json:"metadata"`
}

// Set is the model output and, with the metadata made authoritative, the
// response body.
type Set struct {
	Data Data `json:"data"`
}

// Schema is the MCQ set the model must produce.
var Schema = &llm.Schema{
	Name:        "mcq-set",
	Description: "A set of multiple choice questions with answer explanations",
	Definition: llm.Obj(map[string]any{
		"data": llm.Obj(map[string]any{
			"questions": llm.ArrLen(llm.Obj(map[string]any{
				"text":          llm.StrLen("The question stem", 1, 0),
				"taxonomyLevel": llm.StrLen("The Bloom's taxonomy level this question targets", 1, 0),
				"answers": llm.ArrLen(llm.Obj(map[string]any{
					"text":        llm.StrLen("", 1, 0),
					"isCorrect":   llm.Bool("Exactly one answer per question is correct"),
					"explanation": llm.Str("Why this answer is right or wrong"),
				}, "text", "isCorrect"), 2, 0),
				"explanation": llm.Str("Explanation of the correct answer"),
			}, "text", "taxonomyLevel", "answers"), 1, 0),
			"metadata": llm.Obj(map[string]any{
				"topic":          llm.Str(""),
				"difficulty":     llm.Str("Overall difficulty of the set"),
				"totalQuestions": llm.Int(""),
				"taxonomyLevels": llm.StrList(""),
				"timestamp":      llm.Str(""),
			}, "topic", "difficulty", "totalQuestions", "taxonomyLevels", "timestamp"),
		}, "questions", "metadata"),
	}, "data"),
}
