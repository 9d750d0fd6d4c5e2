package sow

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a curriculum planning expert who creates detailed schemes of work. You must respond with a valid JSON object that exactly matches the specified schema structure. Do not include any additional text or explanations outside the JSON object.`

func buildUserMessage(req *Request) string {
	var b strings.Builder

	b.WriteString("Create a scheme of work with the following details:\n\n")
	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Year Group: %d\n", req.AgeGroup.Year)
	if r := req.AgeGroup.AgeRange; len(r) == 2 {
		fmt.Fprintf(&b, "Age Range: %d-%d\n", r[0], r[1])
	}
	fmt.Fprintf(&b, "Total Lessons: %d\n", req.TotalLessons)
	fmt.Fprintf(&b, "Lesson Duration: %d minutes\n\n", req.LessonDuration)

	emphasis := "Not specified"
	if len(req.UserPreferences.EmphasisAreas) > 0 {
		emphasis = strings.Join(req.UserPreferences.EmphasisAreas, ", ")
	}
	fmt.Fprintf(&b, "Emphasis Areas: %s\n", emphasis)
	fmt.Fprintf(&b, "Difficulty Level: %s\n", req.UserPreferences.DifficultyLevel)

	b.WriteString("\nEnsure:\n")
	b.WriteString("1. Each lesson has clear objectives and activities\n")
	b.WriteString("2. Activities have appropriate durations\n")
	b.WriteString("3. Include assessment opportunities\n")
	b.WriteString("4. Consider differentiation strategies\n")
	b.WriteString("5. List required resources\n\n")
	b.WriteString("The response must be valid JSON. Do not include any markdown formatting or additional text.")

	return b.String()
}
