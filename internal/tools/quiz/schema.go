package quiz

import "github.com/abhisek/edugen/internal/llm"

// Request is the quiz generator form.
type Request struct {
	Topic         string   `json:"topic,omitempty"`
	QuestionCount int      `json:"questionCount,omitempty" jsonschema:"minimum=1,maximum=50"`
	Difficulty    string   `json:"difficulty,omitempty" jsonschema:"enum=easy,enum=medium,enum=hard"`
	QuestionTypes []string `json:"questionTypes,omitempty"`
	Subject       string   `json:"subject,omitempty"`
	GradeLevel    string   `json:"gradeLevel,omitempty"`
}

var requestSchema = llm.SchemaFor[Request]("quiz-request", "Quiz generator request")

var questionTypes = []string{"multiple_choice", "true_false", "short_answer"}

type Option struct {
	Text        string `json:"text"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation,omitempty"`
}

type Feedback struct {
	Correct   string `json:"correct"`
	Incorrect string `json:"incorrect"`
}

type Question struct {
	QuestionText string   `json:"questionText"`
	Options      []Option `json:"options"`
	Type         string   `json:"type"`
	Difficulty   string   `json:"difficulty"`
	Points       int      `json:"points"`
	Feedback     Feedback `json:"feedback"`
}

type Metadata struct {
	Title       string `json:"title"`
	Subject     string `json:"subject,omitempty"`
	GradeLevel  string `json:"gradeLevel,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	TotalPoints int    `json:"totalPoints,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// Quiz is the model output and the response body.
type Quiz struct {
	Metadata     Metadata   `json:"metadata"`
	Questions    []Question `json:"questions"`
	Instructions []string   `json:"instructions,omitempty"`
}

// Schema is the quiz the model must produce.
var Schema = &llm.Schema{
	Name:        "quiz",
	Description: "A quiz with feedback for correct and incorrect answers",
	Definition: llm.Obj(map[string]any{
		"metadata": llm.Obj(map[string]any{
			"title":       llm.StrLen("", 1, 0),
			"subject":     llm.Str(""),
			"gradeLevel":  llm.Str(""),
			"duration":    llm.IntRange("Suggested duration in minutes", 5, 180),
			"totalPoints": llm.Int(""),
			"createdAt":   llm.DateTime(""),
		}, "title", "createdAt"),
		"questions": llm.ArrLen(llm.Obj(map[string]any{
			"questionText": llm.StrLen("", 5, 0),
			"options": llm.ArrLen(llm.Obj(map[string]any{
				"text":        llm.StrLen("", 1, 0),
				"isCorrect":   llm.Bool(""),
				"explanation": llm.Str(""),
			}, "text", "isCorrect"), 2, 5),
			"type":       llm.Enum("", questionTypes...),
			"difficulty": llm.Enum("", "easy", "medium", "hard"),
			"points":     llm.IntRange("", 1, 10),
			"feedback": llm.Obj(map[string]any{
				"correct":   llm.Str("Shown when the answer is right"),
				"incorrect": llm.Str("Shown when the answer is wrong"),
			}, "correct", "incorrect"),
		}, "questionText", "options", "type", "difficulty", "points", "feedback"), 1, 0),
		"instructions": llm.StrList("Instructions for students"),
	}, "metadata", "questions"),
}
