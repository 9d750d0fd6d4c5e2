package lessonplan

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/tools"
)

const structuredSystemPrompt = `You are an experienced curriculum developer who writes detailed, classroom-ready lesson plans. You must respond with a valid JSON object that exactly matches the specified schema structure. Do not include any additional text or explanations outside the JSON object.`

func writeDetails(b *strings.Builder, req *Request) {
	b.WriteString("Consider these details:\n")
	tools.OptionalLine(b, "Grade Level", req.Grade)
	tools.OptionalLine(b, "Subject", req.Subject)
	tools.OptionalLine(b, "Duration", req.Duration)
	fmt.Fprintf(b, "\nLesson plan objectives: %s\n", req.Prompt)
}

// buildMarkdownMessage asks for a markdown plan in the classic six-part
// layout.
func buildMarkdownMessage(req *Request) string {
	var b strings.Builder

	b.WriteString("Generate a detailed lesson plan following this format:\n")
	tools.Numbered(&b,
		"Learning Objectives",
		"Required Materials",
		"Introduction (10 minutes)",
		"Main Activities (broken down by time)",
		"Assessment/Evaluation",
		"Homework/Extension Activities",
	)
	b.WriteString("\n")
	writeDetails(&b, req)
	b.WriteString("\nPlease format the response using markdown for better readability.")

	return b.String()
}

func buildStructuredMessage(req *Request) string {
	var b strings.Builder

	b.WriteString("Generate a detailed, structured lesson plan.\n\n")
	writeDetails(&b, req)
	b.WriteString("\nInclude:\n")
	tools.Numbered(&b,
		"Learning objectives and success criteria",
		"An introduction, timed main activities and a plenary",
		"Formative assessment questions tagged with their Bloom's taxonomy category",
		"Differentiation strategies for different learners",
		"Cross-curricular links and the resources needed",
	)
	b.WriteString("\nRespond with ONLY a valid JSON object matching the provided schema.")

	return b.String()
}
