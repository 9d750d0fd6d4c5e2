package llm

// Fragment builders for schema definitions. Objects built with Obj are
// open: keys outside properties pass validation and are dropped when the
// output is decoded into its Go type. Required keys keep the order given.

func Obj(props map[string]any, required ...string) map[string]any {
	req := make([]any, len(required))
	for i, r := range required {
		req[i] = r
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   req,
	}
}

// Closed returns a copy of def with additionalProperties false on every
// object that does not set it, for backends whose structured output
// rejects open objects. def is not modified.
func Closed(def map[string]any) map[string]any {
	out := make(map[string]any, len(def)+1)
	for k, v := range def {
		out[k] = v
	}
	if props, ok := def["properties"].(map[string]any); ok {
		cp := make(map[string]any, len(props))
		for k, v := range props {
			if m, ok := v.(map[string]any); ok {
				v = Closed(m)
			}
			cp[k] = v
		}
		out["properties"] = cp
	}
	if items, ok := def["items"].(map[string]any); ok {
		out["items"] = Closed(items)
	}
	if extra, ok := def["additionalProperties"].(map[string]any); ok {
		out["additionalProperties"] = Closed(extra)
	}
	if _, set := def["additionalProperties"]; !set && def["type"] == "object" {
		out["additionalProperties"] = false
	}
	return out
}

func Str(desc string) map[string]any {
	return withDesc(map[string]any{"type": "string"}, desc)
}

// StrLen is a string with length bounds; max <= 0 leaves it unbounded.
func StrLen(desc string, min, max int) map[string]any {
	s := Str(desc)
	s["minLength"] = min
	if max > 0 {
		s["maxLength"] = max
	}
	return s
}

func DateTime(desc string) map[string]any {
	s := Str(desc)
	s["format"] = "date-time"
	return s
}

func UUID(desc string) map[string]any {
	s := Str(desc)
	s["format"] = "uuid"
	return s
}

func Enum(desc string, values ...string) map[string]any {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	s := Str(desc)
	s["enum"] = enum
	return s
}

func Int(desc string) map[string]any {
	return withDesc(map[string]any{"type": "integer"}, desc)
}

func IntRange(desc string, min, max int) map[string]any {
	s := Int(desc)
	s["minimum"] = min
	s["maximum"] = max
	return s
}

func Num(desc string) map[string]any {
	return withDesc(map[string]any{"type": "number"}, desc)
}

func NumRange(desc string, min, max float64) map[string]any {
	s := Num(desc)
	s["minimum"] = min
	s["maximum"] = max
	return s
}

func Bool(desc string) map[string]any {
	return withDesc(map[string]any{"type": "boolean"}, desc)
}

func Arr(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

// ArrLen is an array with item-count bounds; max <= 0 leaves it unbounded.
func ArrLen(items map[string]any, min, max int) map[string]any {
	s := Arr(items)
	s["minItems"] = min
	if max > 0 {
		s["maxItems"] = max
	}
	return s
}

func StrList(desc string) map[string]any {
	return withDesc(Arr(map[string]any{"type": "string"}), desc)
}

func withDesc(s map[string]any, desc string) map[string]any {
	if desc != "" {
		s["description"] = desc
	}
	return s
}

// numberOf reads a numeric keyword regardless of whether the definition
// was written as Go literals or decoded from JSON.
func numberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
