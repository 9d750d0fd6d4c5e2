package promptgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/tools"
)

const systemPrompt = `You are an educational prompt generator. Your responses must be valid JSON objects that strictly follow the provided schema structure. Generate exactly three different versions of educational prompts based on the given topic and parameters.`

func buildUserMessage(req *Request) string {
	var b strings.Builder

	b.WriteString("Generate three educational prompts.\n\n")
	b.WriteString("Each prompt must include:\n")
	tools.Numbered(&b,
		"Clear prompt text",
		"Pedagogical approach explanation",
		"Specific focus areas",
		"Complexity level (Bloom's Taxonomy and cognitive load 1-5)",
	)

	fmt.Fprintf(&b, "\nTopic: %s\n", req.Topic)
	tools.OptionalLine(&b, "Grade Level", req.Grade)
	tools.OptionalLine(&b, "Subject", req.Subject)
	tools.OptionalLine(&b, "Skill Level", req.SkillLevel)

	b.WriteString("\nEnsure each prompt has different:\n")
	b.WriteString("- Bloom's Taxonomy levels\n")
	b.WriteString("- Cognitive load ratings\n")
	b.WriteString("- Pedagogical approaches\n")
	b.WriteString("- Focus areas\n")
	b.WriteString("\nRespond with ONLY a valid JSON object matching the provided schema.")

	return b.String()
}
