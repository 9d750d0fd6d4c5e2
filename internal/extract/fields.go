package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Field maps a labelled paragraph in model text to a key in the recovered
// object. Key may be a dotted path ("reportSections.target") to build
// nested objects.
type Field struct {
	Key   string
	Label string
}

// FieldScrape recovers string fields from text laid out as labelled
// sections:
//
//	Point: ...
//	**Evidence:** ...
//
// A section runs from its label to the next known label or the end of the
// text. Every field must be found with non-blank content. Build it with
// NewFieldScrape; the zero value fails every input.
type FieldScrape struct {
	fields   []Field
	patterns []*regexp.Regexp
}

// NewFieldScrape compiles one label pattern per field.
func NewFieldScrape(fields ...Field) *FieldScrape {
	f := &FieldScrape{fields: fields, patterns: make([]*regexp.Regexp, len(fields))}
	for i, field := range fields {
		f.patterns[i] = labelPattern(field.Label)
	}
	return f
}

func (*FieldScrape) Name() string { return "fields" }

type labelHit struct {
	field      Field
	start, end int
}

func (f *FieldScrape) Parse(text string) (json.RawMessage, error) {
	if f == nil || len(f.fields) == 0 {
		return nil, fmt.Errorf("no fields configured")
	}

	var hits []labelHit
	for i, field := range f.fields {
		loc := f.patterns[i].FindStringIndex(text)
		if loc == nil {
			continue
		}
		hits = append(hits, labelHit{field: field, start: loc[0], end: loc[1]})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	values := make(map[string]string, len(hits))
	for i, h := range hits {
		stop := len(text)
		if i+1 < len(hits) {
			stop = hits[i+1].start
		}
		values[h.field.Key] = cleanSection(text[h.end:stop])
	}

	var missing []string
	for _, field := range f.fields {
		if values[field.Key] == "" {
			missing = append(missing, field.Label)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("labelled fields not found: %s", strings.Join(missing, ", "))
	}

	obj := map[string]any{}
	for _, field := range f.fields {
		setPath(obj, strings.Split(field.Key, "."), values[field.Key])
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode scraped fields: %w", err)
	}
	return raw, nil
}

// labelPattern matches a label at the start of a line, optionally wrapped
// in markdown emphasis or preceded by a heading marker.
func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:#+[ \t]*)?\**[ \t]*` + regexp.QuoteMeta(label) + `[ \t]*\**[ \t]*:[ \t]*\**`)
}

func cleanSection(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*")
	return strings.TrimSpace(s)
}

func setPath(obj map[string]any, path []string, value string) {
	for _, key := range path[:len(path)-1] {
		next, ok := obj[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			obj[key] = next
		}
		obj = next
	}
	obj[path[len(path)-1]] = value
}
