package peel

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/extract"
	"github.com/abhisek/edugen/internal/tools"
)

const systemPrompt = `You are an experienced teacher who models analytical writing using the PEEL structure (Point, Evidence, Explanation, Link).`

// parsers fall back to the labelled headings the prompt asks for when the
// model answers in prose.
var parsers = extract.WithFields(
	extract.Field{Key: "point", Label: "Point"},
	extract.Field{Key: "evidence", Label: "Evidence"},
	extract.Field{Key: "explanation", Label: "Explanation"},
	extract.Field{Key: "link", Label: "Link"},
)

func buildUserMessage(req *Request) string {
	var b strings.Builder

	b.WriteString("Generate a structured PEEL paragraph analysis with clear separation between each component for the following topic.\n")
	b.WriteString("Consider these details:\n")
	tools.OptionalLine(&b, "Subject Area", req.Subject)
	tools.OptionalLine(&b, "Complexity Level", req.Complexity)
	fmt.Fprintf(&b, "\nTopic: %s\n", req.Topic)

	b.WriteString("\nProvide each component separately:\n")
	b.WriteString("- Point (main argument)\n")
	b.WriteString("- Evidence (supporting facts)\n")
	b.WriteString("- Explanation (analysis)\n")
	b.WriteString("- Link (connection back to topic)")

	return b.String()
}
