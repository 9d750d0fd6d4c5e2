package report

import "github.com/abhisek/edugen/internal/llm"

// Request is the student report form.
type Request struct {
	StudentDetails *StudentDetails `json:"studentDetails,omitempty"`
	Config         *Config         `json:"config,omitempty"`
}

type StudentDetails struct {
	Strengths          string `json:"strengths,omitempty"`
	AreasOfDevelopment string `json:"areasOfDevelopment,omitempty"`
	Progress           string `json:"progress,omitempty"`
	StudentID          string `json:"studentId,omitempty"`
}

type Config struct {
	WordCount int `json:"wordCount,omitempty" jsonschema:"minimum=50,maximum=2000"`
}

var requestSchema = llm.SchemaFor[Request]("report-request", "Student report generator request")

type Sections struct {
	OverarchingAssessment string `json:"overarchingAssessment"`
	Target                string `json:"target"`
	SupportiveEndNote     string `json:"supportiveEndNote"`
}

type Metadata struct {
	StudentID   string `json:"studentId"`
	GeneratedAt string `json:"generatedAt"`
	WordCount   int    `json:"wordCount"`
	Version     string `json:"version"`
}

type Output struct {
	ReportSections Sections  `json:"reportSections"`
	CompleteReport string    `json:"completeReport,omitempty"`
	Metadata       *Metadata `json:"metadata,omitempty"`
}

// Report is the model output envelope, kept as {data: {output: ...}}.
type Report struct {
	Data struct {
		Output Output `json:"output"`
	} `json:"data"`
}

var sectionsDefinition = llm.Obj(map[string]any{
	"overarchingAssessment": llm.StrLen("Overall assessment of the student's work and attitude", 1, 0),
	"target":                llm.StrLen("A specific, actionable target", 1, 0),
	"supportiveEndNote":     llm.StrLen("An encouraging closing remark", 1, 0),
}, "overarchingAssessment", "target", "supportiveEndNote")

var metadataDefinition = llm.Obj(map[string]any{
	"studentId":   llm.Str(""),
	"generatedAt": llm.Str(""),
	"wordCount":   llm.Int(""),
	"version":     llm.Str(""),
}, "studentId", "generatedAt", "wordCount", "version")

func envelope(output map[string]any) map[string]any {
	return llm.Obj(map[string]any{
		"data": llm.Obj(map[string]any{"output": output}, "output"),
	}, "data")
}

// Schema is what the model must produce. The complete report and metadata
// are filled in by the tool when the model leaves them out.
var Schema = &llm.Schema{
	Name:        "student-report",
	Description: "A student progress report split into sections",
	Definition: envelope(llm.Obj(map[string]any{
		"reportSections": sectionsDefinition,
		"completeReport": llm.Str("The full report as continuous prose"),
		"metadata":       metadataDefinition,
	}, "reportSections")),
}

// ResponseSchema is the endpoint body without the generation block.
var ResponseSchema = &llm.Schema{
	Name: "student-report-response",
	Definition: envelope(llm.Obj(map[string]any{
		"reportSections": sectionsDefinition,
		"completeReport": llm.StrLen("", 1, 0),
		"metadata": llm.Obj(map[string]any{
			"studentId":   llm.StrLen("", 1, 0),
			"generatedAt": llm.DateTime(""),
			"wordCount":   llm.IntRange("", 50, 2000),
			"version":     llm.StrLen("", 1, 0),
		}, "studentId", "generatedAt", "wordCount", "version"),
	}, "reportSections", "completeReport", "metadata")),
}
