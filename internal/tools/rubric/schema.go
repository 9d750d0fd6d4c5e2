package rubric

import "github.com/abhisek/edugen/internal/llm"

var (
	assignmentTypes   = []string{"analytical_essay", "debate", "research_project", "presentation", "other"}
	keyStages         = []string{"ks3", "ks4", "ks5"}
	assessmentTypes   = []string{"teacher", "peer", "self"}
	performanceLevels = []string{"advanced", "proficient", "developing", "needs_improvement"}
)

// Request is the rubric form.
type Request struct {
	AssignmentType         string   `json:"assignmentType,omitempty" jsonschema:"enum=analytical_essay,enum=debate,enum=research_project,enum=presentation,enum=other"`
	CustomAssignmentType   string   `json:"customAssignmentType,omitempty"`
	KeyStage               string   `json:"keyStage,omitempty" jsonschema:"enum=ks3,enum=ks4,enum=ks5"`
	YearGroup              int      `json:"yearGroup,omitempty" jsonschema:"minimum=7,maximum=13"`
	AssessmentType         string   `json:"assessmentType,omitempty" jsonschema:"enum=teacher,enum=peer,enum=self"`
	Criteria               []string `json:"criteria,omitempty" jsonschema:"minItems=1,maxItems=6"`
	AdditionalInstructions string   `json:"additionalInstructions,omitempty"`
}

var requestSchema = llm.SchemaFor[Request]("rubric-request", "Rubric generator request")

type Feedback struct {
	Text            string   `json:"text"`
	Suggestions     []string `json:"suggestions"`
	ActionableSteps []string `json:"actionableSteps"`
}

type Criterion struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	FeedbackByLevel map[string]Feedback `json:"feedbackByLevel"`
}

type Instructions struct {
	Teacher []string `json:"teacher"`
	Peer    []string `json:"peer,omitempty"`
	Self    []string `json:"self,omitempty"`
}

type Rubric struct {
	Criteria          []Criterion  `json:"criteria"`
	Instructions      Instructions `json:"instructions"`
	ReflectionPrompts []string     `json:"reflectionPrompts"`
}

// Output is what the model returns.
type Output struct {
	Rubric Rubric `json:"rubric"`
}

type Metadata struct {
	AssignmentType       string `json:"assignmentType"`
	CustomAssignmentType string `json:"customAssignmentType,omitempty"`
	KeyStage             string `json:"keyStage"`
	YearGroup            int    `json:"yearGroup,omitempty"`
	AssessmentType       string `json:"assessmentType"`
}

func feedbackByLevel() map[string]any {
	feedback := llm.Obj(map[string]any{
		"text":            llm.StrLen("", 1, 0),
		"suggestions":     llm.StrList(""),
		"actionableSteps": llm.StrList(""),
	}, "text", "suggestions", "actionableSteps")

	props := make(map[string]any, len(performanceLevels))
	for _, level := range performanceLevels {
		props[level] = feedback
	}
	return llm.Obj(props, performanceLevels...)
}

var rubricDefinition = llm.Obj(map[string]any{
	"criteria": llm.ArrLen(llm.Obj(map[string]any{
		"name":            llm.StrLen("", 1, 0),
		"description":     llm.StrLen("", 1, 0),
		"feedbackByLevel": feedbackByLevel(),
	}, "name", "description", "feedbackByLevel"), 1, 0),
	"instructions": llm.Obj(map[string]any{
		"teacher": llm.StrList("Instructions for the teacher marking the work"),
		"peer":    llm.StrList("Instructions for peer assessment"),
		"self":    llm.StrList("Instructions for self assessment"),
	}, "teacher"),
	"reflectionPrompts": llm.StrList("Questions for the student to reflect on"),
}, "criteria", "instructions", "reflectionPrompts")

// Schema is the rubric the model must produce.
var Schema = &llm.Schema{
	Name:        "rubric",
	Description: "An assessment rubric with feedback for each performance level",
	Definition:  llm.Obj(map[string]any{"rubric": rubricDefinition}, "rubric"),
}

// ResponseSchema is the endpoint body without the generation block.
var ResponseSchema = &llm.Schema{
	Name: "rubric-response",
	Definition: llm.Obj(map[string]any{
		"id":        llm.UUID(""),
		"createdAt": llm.DateTime(""),
		"metadata": llm.Obj(map[string]any{
			"assignmentType":       llm.Enum("", assignmentTypes...),
			"customAssignmentType": llm.Str(""),
			"keyStage":             llm.Enum("", keyStages...),
			"yearGroup":            llm.Int(""),
			"assessmentType":       llm.Enum("", assessmentTypes...),
		}, "assignmentType", "keyStage", "assessmentType"),
		"rubric":  rubricDefinition,
		"version": llm.Int(""),
	}, "id", "createdAt", "metadata", "rubric", "version"),
}
