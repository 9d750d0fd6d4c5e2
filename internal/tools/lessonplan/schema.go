package lessonplan

import "github.com/abhisek/edugen/internal/llm"

const (
	FormatMarkdown   = "markdown"
	FormatStructured = "structured"
)

// Request is the lesson plan form. Grade, subject and duration are free
// text ("Year 9", "45 minutes").
type Request struct {
	Prompt   string `json:"prompt,omitempty"`
	Grade    string `json:"grade,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Duration string `json:"duration,omitempty"`
	Format   string `json:"format,omitempty" jsonschema:"enum=markdown,enum=structured"`
}

var requestSchema = llm.SchemaFor[Request]("lesson-plan-request", "Lesson plan generator request")

// Metadata echoes the form on both response formats.
type Metadata struct {
	Grade     string `json:"grade,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Timestamp string `json:"timestamp"`
}

type Activity struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Duration     int      `json:"duration"`
	Instructions []string `json:"instructions"`
	Materials    []string `json:"materials,omitempty"`
	GroupSize    int      `json:"groupSize,omitempty"`
}

type AssessmentQuestion struct {
	Type            string `json:"type"`
	Question        string `json:"question"`
	SuggestedAnswer string `json:"suggestedAnswer,omitempty"`
}

type Strategy struct {
	StudentType        string   `json:"studentType"`
	Accommodations     []string `json:"accommodations"`
	Resources          []string `json:"resources,omitempty"`
	TeachingStrategies []string `json:"teachingStrategies"`
}

type CrossCurricularLink struct {
	Subject           string `json:"subject"`
	Connection        string `json:"connection"`
	SuggestedActivity string `json:"suggestedActivity,omitempty"`
}

type PlanMetadata struct {
	Topic     string `json:"topic"`
	YearGroup string `json:"yearGroup"`
	Duration  int    `json:"duration"`
	Subject   string `json:"subject"`
	CreatedAt string `json:"createdAt"`
}

type Objectives struct {
	Learning []string `json:"learning"`
	Success  []string `json:"success"`
}

type Introduction struct {
	Duration          int        `json:"duration"`
	Activities        []Activity `json:"activities"`
	PromptsForThought []string   `json:"promptsForThought"`
}

type Plenary struct {
	Duration            int        `json:"duration"`
	Activities          []Activity `json:"activities"`
	ReflectionQuestions []string   `json:"reflectionQuestions"`
}

type Structure struct {
	Introduction   Introduction `json:"introduction"`
	MainActivities []Activity   `json:"mainActivities"`
	Plenary        Plenary      `json:"plenary"`
}

type Assessment struct {
	Formative       []AssessmentQuestion `json:"formative"`
	Summative       []AssessmentQuestion `json:"summative,omitempty"`
	SuccessCriteria []string             `json:"successCriteria"`
}

type Differentiation struct {
	Strategies  []Strategy          `json:"strategies"`
	Resources   []string            `json:"resources"`
	Adaptations map[string][]string `json:"adaptations"`
}

type Resources struct {
	Required []string `json:"required"`
	Optional []string `json:"optional,omitempty"`
	Digital  []string `json:"digital,omitempty"`
}

type Extension struct {
	EnrichmentActivities []string `json:"enrichmentActivities"`
	HomeworkIdeas        []string `json:"homeworkIdeas,omitempty"`
	FurtherReading       []string `json:"furtherReading,omitempty"`
}

type TeacherNotes struct {
	Preparation          []string `json:"preparation,omitempty"`
	SafetyConsiderations []string `json:"safetyConsiderations,omitempty"`
	CommonMisconceptions []string `json:"commonMisconceptions,omitempty"`
	Tips                 []string `json:"tips,omitempty"`
}

// Plan is a fully structured lesson plan.
type Plan struct {
	Metadata             PlanMetadata          `json:"metadata"`
	Objectives           Objectives            `json:"objectives"`
	LessonStructure      Structure             `json:"lessonStructure"`
	Assessment           Assessment            `json:"assessment"`
	Differentiation      Differentiation       `json:"differentiation"`
	CrossCurricularLinks []CrossCurricularLink `json:"crossCurricularLinks"`
	Resources            Resources             `json:"resources"`
	Extension            *Extension            `json:"extension,omitempty"`
	TeacherNotes         *TeacherNotes         `json:"teacherNotes,omitempty"`
}

var bloomsTypes = []string{"knowledge", "comprehension", "application", "analysis", "synthesis", "evaluation"}

var activity = llm.Obj(map[string]any{
	"title":        llm.StrLen("", 1, 0),
	"description":  llm.Str(""),
	"duration":     minInt("Minutes", 1),
	"instructions": llm.StrList("Step-by-step instructions"),
	"materials":    llm.StrList(""),
	"groupSize":    llm.Int("Students per group"),
}, "title", "description", "duration", "instructions")

var assessmentQuestion = llm.Obj(map[string]any{
	"type":            llm.Enum("Bloom's taxonomy category", bloomsTypes...),
	"question":        llm.StrLen("", 1, 0),
	"suggestedAnswer": llm.Str(""),
}, "type", "question")

// Schema is the structured lesson plan.
var Schema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A structured lesson plan",
	Definition: llm.Obj(map[string]any{
		"metadata": llm.Obj(map[string]any{
			"topic":     llm.StrLen("", 1, 0),
			"yearGroup": llm.Str(""),
			"duration":  minInt("Total minutes", 1),
			"subject":   llm.Str(""),
			"createdAt": llm.DateTime(""),
		}, "topic", "yearGroup", "duration", "subject", "createdAt"),
		"objectives": llm.Obj(map[string]any{
			"learning": llm.StrList("What students will learn"),
			"success":  llm.StrList("How students know they have succeeded"),
		}, "learning", "success"),
		"lessonStructure": llm.Obj(map[string]any{
			"introduction": llm.Obj(map[string]any{
				"duration":          llm.Int("Minutes"),
				"activities":        llm.Arr(activity),
				"promptsForThought": llm.StrList(""),
			}, "duration", "activities", "promptsForThought"),
			"mainActivities": llm.ArrLen(activity, 1, 0),
			"plenary": llm.Obj(map[string]any{
				"duration":            llm.Int("Minutes"),
				"activities":          llm.Arr(activity),
				"reflectionQuestions": llm.StrList(""),
			}, "duration", "activities", "reflectionQuestions"),
		}, "introduction", "mainActivities", "plenary"),
		"assessment": llm.Obj(map[string]any{
			"formative":       llm.Arr(assessmentQuestion),
			"summative":       llm.Arr(assessmentQuestion),
			"successCriteria": llm.StrList(""),
		}, "formative", "successCriteria"),
		"differentiation": llm.Obj(map[string]any{
			"strategies": llm.Arr(llm.Obj(map[string]any{
				"studentType":        llm.Str("e.g. dyslexia, EAL, visual learners"),
				"accommodations":     llm.StrList(""),
				"resources":          llm.StrList(""),
				"teachingStrategies": llm.StrList(""),
			}, "studentType", "accommodations", "teachingStrategies")),
			"resources": llm.StrList(""),
			"adaptations": map[string]any{
				"type":                 "object",
				"description":          "Adaptations keyed by need",
				"additionalProperties": llm.StrList(""),
			},
		}, "strategies", "resources", "adaptations"),
		"crossCurricularLinks": llm.Arr(llm.Obj(map[string]any{
			"subject":           llm.Str(""),
			"connection":        llm.Str(""),
			"suggestedActivity": llm.Str(""),
		}, "subject", "connection")),
		"resources": llm.Obj(map[string]any{
			"required": llm.StrList(""),
			"optional": llm.StrList(""),
			"digital":  llm.StrList(""),
		}, "required"),
		"extension": llm.Obj(map[string]any{
			"enrichmentActivities": llm.StrList(""),
			"homeworkIdeas":        llm.StrList(""),
			"furtherReading":       llm.StrList(""),
		}, "enrichmentActivities"),
		"teacherNotes": llm.Obj(map[string]any{
			"preparation":          llm.StrList(""),
			"safetyConsiderations": llm.StrList(""),
			"commonMisconceptions": llm.StrList(""),
			"tips":                 llm.StrList(""),
		}),
	}, "metadata", "objectives", "lessonStructure", "assessment", "differentiation", "crossCurricularLinks", "resources"),
}

func minInt(desc string, min int) map[string]any {
	s := llm.Int(desc)
	s["minimum"] = min
	return s
}
