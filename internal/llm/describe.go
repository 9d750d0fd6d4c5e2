package llm

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders a schema as indented, human-readable text for use in
// prompts. It reads the same Definition the validator compiles, so the
// structure asked for and the structure checked cannot drift apart.
//
// Properties appear required-first in declaration order, then optional
// ones alphabetically.
func Describe(schema *Schema) string {
	if schema == nil {
		return ""
	}
	var b strings.Builder
	if schema.Description != "" {
		fmt.Fprintf(&b, "%s.\n", strings.TrimSuffix(schema.Description, "."))
	}
	b.WriteString("Respond with a single JSON object with this structure:\n")
	describeProperties(&b, schema.Definition, 0)
	return strings.TrimRight(b.String(), "\n")
}

func describeProperties(b *strings.Builder, def map[string]any, depth int) {
	props, _ := def["properties"].(map[string]any)
	required := stringList(def["required"])
	isRequired := make(map[string]bool, len(required))
	for _, r := range required {
		isRequired[r] = true
	}

	var optional []string
	for name := range props {
		if !isRequired[name] {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)

	order := make([]string, 0, len(props))
	for _, r := range required {
		if _, ok := props[r]; ok {
			order = append(order, r)
		}
	}
	order = append(order, optional...)

	indent := strings.Repeat("  ", depth)
	for _, name := range order {
		prop, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(b, "%s- %s (%s)", indent, name, describeConstraints(prop, isRequired[name]))
		if desc, ok := prop["description"].(string); ok && desc != "" {
			fmt.Fprintf(b, ": %s", desc)
		}
		b.WriteByte('\n')

		switch {
		case hasProperties(prop):
			describeProperties(b, prop, depth+1)
		case prop["type"] == "array":
			if items, ok := prop["items"].(map[string]any); ok && hasProperties(items) {
				describeProperties(b, items, depth+1)
			}
		}
	}
}

func describeConstraints(prop map[string]any, required bool) string {
	parts := []string{describeType(prop)}
	if required {
		parts = append(parts, "required")
	} else {
		parts = append(parts, "optional")
	}

	if enum := enumValues(prop["enum"]); len(enum) > 0 {
		parts = append(parts, "one of: "+strings.Join(enum, ", "))
	}
	if f, ok := prop["format"].(string); ok {
		parts = append(parts, f)
	}

	if r := describeRange(prop, "minimum", "maximum", ""); r != "" {
		parts = append(parts, r)
	}
	if r := describeRange(prop, "minLength", "maxLength", " characters"); r != "" {
		parts = append(parts, r)
	}
	if r := describeRange(prop, "minItems", "maxItems", " items"); r != "" {
		parts = append(parts, r)
	}
	return strings.Join(parts, ", ")
}

func describeType(prop map[string]any) string {
	t, _ := prop["type"].(string)
	if t != "array" {
		if t == "" {
			return "any"
		}
		return t
	}
	items, ok := prop["items"].(map[string]any)
	if !ok {
		return "array"
	}
	it, _ := items["type"].(string)
	if it == "" {
		return "array"
	}
	return "array of " + it + "s"
}

func describeRange(prop map[string]any, minKey, maxKey, unit string) string {
	lo, hasLo := numberOf(prop[minKey])
	hi, hasHi := numberOf(prop[maxKey])
	switch {
	case hasLo && hasHi && lo == hi:
		return fmt.Sprintf("exactly %s%s", formatNumber(lo), unit)
	case hasLo && hasHi:
		return fmt.Sprintf("%s to %s%s", formatNumber(lo), formatNumber(hi), unit)
	case hasLo:
		return fmt.Sprintf("at least %s%s", formatNumber(lo), unit)
	case hasHi:
		return fmt.Sprintf("at most %s%s", formatNumber(hi), unit)
	}
	return ""
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func enumValues(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, len(l))
		for i, e := range l {
			out[i] = fmt.Sprint(e)
		}
		return out
	}
	return nil
}

func hasProperties(def map[string]any) bool {
	props, ok := def["properties"].(map[string]any)
	return ok && len(props) > 0
}
