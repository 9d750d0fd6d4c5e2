package tools

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp formats t the way every response metadata block carries it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// OptionalLine writes "label: value" when value is non-blank. Optional
// form fields left empty produce no line at all.
func OptionalLine(b *strings.Builder, label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}

// Numbered writes items as a numbered list.
func Numbered(b *strings.Builder, items ...string) {
	for i, it := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, it)
	}
}
