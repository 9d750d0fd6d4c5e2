package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/extract"
)

const systemPrompt = `You are an educational professional who writes detailed student progress reports. You must respond with a valid JSON object that exactly matches the specified schema structure. Do not include any additional text or explanations outside the JSON object.`

var parsers = extract.WithFields(
	extract.Field{Key: "data.output.reportSections.overarchingAssessment", Label: "Overarching Assessment"},
	extract.Field{Key: "data.output.reportSections.target", Label: "Target"},
	extract.Field{Key: "data.output.reportSections.supportiveEndNote", Label: "Supportive End Note"},
)

func buildUserMessage(d *StudentDetails, wordCount int, studentID string) string {
	var b strings.Builder

	b.WriteString("Generate a student progress report with the following details:\n\n")
	b.WriteString("Student Details:\n")
	fmt.Fprintf(&b, "- Strengths: %s\n", d.Strengths)
	fmt.Fprintf(&b, "- Areas of Development: %s\n", d.AreasOfDevelopment)
	fmt.Fprintf(&b, "- Progress: %s\n\n", d.Progress)
	fmt.Fprintf(&b, "Word Count: %d\n", wordCount)
	fmt.Fprintf(&b, "Student ID: %s\n\n", studentID)

	b.WriteString("The report should be professional, constructive, and encouraging. ")
	b.WriteString("Include specific examples and actionable recommendations.\n")
	b.WriteString("The response must be valid JSON. Do not include any markdown formatting or additional text.")

	return b.String()
}
