package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/tools"
)

const systemPrompt = `You are an educational assessment expert who creates engaging quizzes. Your responses must be valid JSON objects that strictly follow the provided schema structure.`

func buildUserMessage(req *Request) string {
	var b strings.Builder

	b.WriteString("Generate a quiz with the following details:\n\n")
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Number of Questions: %d\n", req.QuestionCount)
	fmt.Fprintf(&b, "Difficulty Level: %s\n", req.Difficulty)
	fmt.Fprintf(&b, "Question Types: %s\n", strings.Join(req.QuestionTypes, ", "))
	tools.OptionalLine(&b, "Subject", req.Subject)
	tools.OptionalLine(&b, "Grade Level", req.GradeLevel)

	b.WriteString("\nInclude:\n")
	tools.Numbered(&b,
		"Clear and concise questions",
		"Multiple options with one correct answer",
		"Explanatory feedback for correct and incorrect answers",
		"Appropriate difficulty level",
	)
	b.WriteString("\nRespond with ONLY a valid JSON object matching the provided schema.")

	return b.String()
}
