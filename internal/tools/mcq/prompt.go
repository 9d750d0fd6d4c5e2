package mcq

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an educational assessment expert who creates high-quality multiple choice questions. You must respond with a valid JSON object that exactly matches the specified schema structure. Do not include any additional text or explanations outside the JSON object.`

func buildUserMessage(req *Request) string {
	var b strings.Builder

	b.WriteString("Create multiple choice questions for:\n")
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Number of Options per Question: %d\n", req.AnswersPerQuestion)
	fmt.Fprintf(&b, "Bloom's Taxonomy Levels: %s\n", strings.Join(req.TaxonomyLevels, ", "))

	b.WriteString("\nEnsure:\n")
	fmt.Fprintf(&b, "1. Each question has exactly %d answer options\n", req.AnswersPerQuestion)
	b.WriteString("2. Only one answer is marked as correct\n")
	b.WriteString("3. Each question matches its specified Bloom's taxonomy level\n")
	b.WriteString("4. Include explanations for both correct and incorrect answers\n")
	b.WriteString("\nThe response must be valid JSON. Do not include any markdown formatting or additional text.")

	return b.String()
}
