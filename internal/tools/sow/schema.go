package sow

import "github.com/abhisek/edugen/internal/llm"

// Request is the scheme of work form.
type Request struct {
	Subject         string       `json:"subject,omitempty"`
	Topic           string       `json:"topic,omitempty"`
	AgeGroup        *AgeGroup    `json:"ageGroup,omitempty"`
	TotalLessons    int          `json:"totalLessons,omitempty" jsonschema:"minimum=1,maximum=30"`
	LessonDuration  int          `json:"lessonDuration,omitempty" jsonschema:"minimum=10,maximum=240"`
	UserPreferences *Preferences `json:"userPreferences,omitempty"`
}

type AgeGroup struct {
	Year     int   `json:"year"`
	AgeRange []int `json:"ageRange"`
}

type Preferences struct {
	EmphasisAreas   []string `json:"emphasisAreas,omitempty"`
	DifficultyLevel string   `json:"difficultyLevel,omitempty" jsonschema:"enum=beginner,enum=intermediate,enum=advanced"`
}

// requestSchema is stricter than the Go type about ageGroup: ageRange is a
// [min, max] pair when supplied.
var requestSchema = func() *llm.Schema {
	s := llm.SchemaFor[Request]("sow-request", "Scheme of work generator request")
	props := s.Definition["properties"].(map[string]any)
	props["ageGroup"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"year":     llm.IntRange("", 1, 13),
			"ageRange": llm.ArrLen(map[string]any{"type": "integer", "minimum": 3, "maximum": 19}, 2, 2),
		},
	}
	return s
}()

type Activity struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Resources   []string `json:"resources,omitempty"`
}

type Differentiation struct {
	Support   []string `json:"support,omitempty"`
	Core      []string `json:"core,omitempty"`
	Extension []string `json:"extension,omitempty"`
}

type Lesson struct {
	LessonNumber       int              `json:"lessonNumber"`
	Duration           int              `json:"duration"`
	LearningObjectives []string         `json:"learningObjectives"`
	Activities         []Activity       `json:"activities"`
	Assessment         []string         `json:"assessment,omitempty"`
	Differentiation    *Differentiation `json:"differentiation,omitempty"`
}

type Metadata struct {
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
	Version   string `json:"version"`
}

type Data struct {
	Subject               string    `json:"subject"`
	Topic                 string    `json:"topic"`
	AgeGroup              AgeGroup  `json:"ageGroup"`
	OverarchingObjectives []string  `json:"overarchingObjectives"`
	Lessons               []Lesson  `json:"lessons"`
	Metadata              *Metadata `json:"metadata,omitempty"`
}

// Scheme is the {data: ...} envelope the model returns.
type Scheme struct {
	Data Data `json:"data"`
}

var lessonDefinition = llm.Obj(map[string]any{
	"lessonNumber":       llm.Int("1-based position in the scheme"),
	"duration":           llm.Int("Minutes"),
	"learningObjectives": llm.StrList(""),
	"activities": llm.Arr(llm.Obj(map[string]any{
		"title":       llm.StrLen("", 1, 0),
		"description": llm.Str(""),
		"duration":    llm.Int("Minutes"),
		"resources":   llm.StrList(""),
	}, "title", "description", "duration")),
	"assessment": llm.StrList("Assessment opportunities"),
	"differentiation": llm.Obj(map[string]any{
		"support":   llm.StrList(""),
		"core":      llm.StrList(""),
		"extension": llm.StrList(""),
	}),
}, "lessonNumber", "duration", "learningObjectives", "activities")

func schemeDefinition(metadata map[string]any, required ...string) map[string]any {
	return llm.Obj(map[string]any{
		"data": llm.Obj(map[string]any{
			"subject": llm.Str(""),
			"topic":   llm.Str(""),
			"ageGroup": llm.Obj(map[string]any{
				"year":     llm.Int(""),
				"ageRange": llm.ArrLen(llm.Int(""), 2, 2),
			}, "year", "ageRange"),
			"overarchingObjectives": llm.StrList(""),
			"lessons":               llm.ArrLen(lessonDefinition, 1, 0),
			"metadata":              metadata,
		}, required...),
	}, "data")
}

// Schema is what the model must produce. Metadata is optional; the tool
// stamps it.
var Schema = &llm.Schema{
	Name:        "scheme-of-work",
	Description: "A scheme of work split into lessons",
	Definition: schemeDefinition(llm.Obj(map[string]any{
		"author":    llm.Str(""),
		"createdAt": llm.Str(""),
		"version":   llm.Str(""),
	}, "author", "createdAt", "version"),
		"subject", "topic", "ageGroup", "overarchingObjectives", "lessons"),
}

// ResponseSchema is the endpoint body without the generation block.
var ResponseSchema = &llm.Schema{
	Name: "scheme-of-work-response",
	Definition: schemeDefinition(llm.Obj(map[string]any{
		"author":    llm.StrLen("", 1, 0),
		"createdAt": llm.DateTime(""),
		"version":   llm.StrLen("", 1, 0),
	}, "author", "createdAt", "version"),
		"subject", "topic", "ageGroup", "overarchingObjectives", "lessons", "metadata"),
}
