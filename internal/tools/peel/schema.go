package peel

import "github.com/abhisek/edugen/internal/llm"

// Request is the PEEL paragraph form.
type Request struct {
	Topic      string `json:"topic,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Complexity string `json:"complexity,omitempty" jsonschema:"enum=basic,enum=intermediate,enum=advanced"`
}

var requestSchema = llm.SchemaFor[Request]("peel-request", "PEEL generator request")

// Content is one Point, Evidence, Explanation, Link paragraph.
type Content struct {
	Point       string `json:"point"`
	Evidence    string `json:"evidence"`
	Explanation string `json:"explanation"`
	Link        string `json:"link"`
}

type Metadata struct {
	Topic      string `json:"topic"`
	Subject    string `json:"subject,omitempty"`
	Complexity string `json:"complexity,omitempty"`
	Timestamp  string `json:"timestamp"`
}

var contentDefinition = llm.Obj(map[string]any{
	"point":       llm.StrLen("The main argument", 10, 500),
	"evidence":    llm.StrLen("Supporting facts, data or quotations", 20, 1000),
	"explanation": llm.StrLen("Analysis of how the evidence supports the point", 30, 1000),
	"link":        llm.StrLen("Connection back to the topic or question", 10, 500),
}, "point", "evidence", "explanation", "link")

// Schema is the paragraph the model must produce.
var Schema = &llm.Schema{
	Name:        "peel-paragraph",
	Description: "A structured PEEL paragraph with each component separated",
	Definition:  contentDefinition,
}

// ResponseSchema is the endpoint body without the generation block.
var ResponseSchema = &llm.Schema{
	Name: "peel-response",
	Definition: llm.Obj(map[string]any{
		"content": contentDefinition,
		"metadata": llm.Obj(map[string]any{
			"topic":      llm.StrLen("", 1, 0),
			"subject":    llm.Str(""),
			"complexity": llm.Str(""),
			"timestamp":  llm.DateTime(""),
		}, "topic", "timestamp"),
	}, "content", "metadata"),
}
