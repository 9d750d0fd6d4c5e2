package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*[ \t]*\r?\n?(.*?)```")

// EmbeddedJSON finds a JSON object inside surrounding text. Fenced code
// blocks are tried first, in order of appearance; then every balanced
// {...} span in the text, outermost first.
type EmbeddedJSON struct{}

func (EmbeddedJSON) Name() string { return "embedded" }

func (EmbeddedJSON) Parse(text string) (json.RawMessage, error) {
	for _, m := range fencePattern.FindAllStringSubmatch(text, -1) {
		block := strings.TrimSpace(m[1])
		if checkObject(block) == nil {
			return json.RawMessage(block), nil
		}
	}

	for start := strings.IndexByte(text, '{'); start >= 0; {
		end := matchBrace(text, start)
		if end > start {
			candidate := text[start : end+1]
			if checkObject(candidate) == nil {
				return json.RawMessage(candidate), nil
			}
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	return nil, errors.New("no embedded JSON object found")
}

// matchBrace returns the index of the brace closing the one at start, or
// -1. Braces inside JSON strings are ignored.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
