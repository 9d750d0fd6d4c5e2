package rubric

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/tools"
)

const systemPrompt = `You are an educational assessment expert who creates detailed rubrics. Your responses must be valid JSON objects that strictly follow the provided schema structure. Generate comprehensive assessment criteria with specific feedback for each performance level.`

func buildUserMessage(req *Request) string {
	var b strings.Builder

	b.WriteString("Create an assessment rubric.\n\n")
	b.WriteString("Assignment Details:\n")
	fmt.Fprintf(&b, "- Type: %s\n", req.AssignmentType)
	if tools.Text(req.CustomAssignmentType) {
		fmt.Fprintf(&b, "- Custom Type: %s\n", strings.TrimSpace(req.CustomAssignmentType))
	}
	fmt.Fprintf(&b, "- Key Stage: %s\n", req.KeyStage)
	if req.YearGroup > 0 {
		fmt.Fprintf(&b, "- Year Group: %d\n", req.YearGroup)
	}
	fmt.Fprintf(&b, "- Assessment Type: %s\n\n", req.AssessmentType)

	fmt.Fprintf(&b, "Required Criteria: %s\n", strings.Join(req.Criteria, ", "))
	tools.OptionalLine(&b, "Additional Instructions", req.AdditionalInstructions)

	b.WriteString("\nFor each criterion:\n")
	tools.Numbered(&b,
		"Provide clear name and description",
		"Include detailed feedback for each performance level (advanced, proficient, developing, needs_improvement)",
		"Include specific suggestions and actionable steps for improvement",
	)
	b.WriteString("\nAlso include:\n")
	tools.Numbered(&b,
		"Appropriate instructions based on assessment type (teacher/peer/self)",
		"Relevant reflection prompts",
	)
	b.WriteString("\nRespond with ONLY a valid JSON object matching the provided schema.")

	return b.String()
}
