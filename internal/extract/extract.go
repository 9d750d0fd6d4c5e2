// Package extract recovers a JSON object from free-form model output.
//
// Models asked for JSON without a provider-enforced schema sometimes wrap
// it in prose or markdown fences, or answer with labelled paragraphs
// instead. A Chain tries a fixed sequence of Parsers and keeps the first
// success; when every parser fails the caller gets a *MalformedOutputError
// listing each attempt.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parser turns model text into a JSON object.
type Parser interface {
	// Name identifies the strategy in logs and error reports.
	Name() string

	// Parse returns the recovered JSON object, or an error describing why
	// this strategy could not find one.
	Parse(text string) (json.RawMessage, error)
}

// Attempt records one parser's failure.
type Attempt struct {
	Parser string
	Err    error
}

// MalformedOutputError is returned when no parser in a chain succeeded.
type MalformedOutputError struct {
	Attempts []Attempt
}

func (e *MalformedOutputError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %v", a.Parser, a.Err)
	}
	return "no JSON could be extracted from model output (" + strings.Join(parts, "; ") + ")"
}

// Chain is an ordered list of parsers. The zero value fails every input.
type Chain []Parser

// Default is the chain used for tools that expect a JSON object and have
// no labelled fields to fall back on.
func Default() Chain {
	return Chain{DirectJSON{}, EmbeddedJSON{}}
}

// WithFields returns the default chain followed by a field scraper for the
// given labelled fields.
func WithFields(fields ...Field) Chain {
	return append(Default(), NewFieldScrape(fields...))
}

// Parse runs each parser in order and returns the first result together
// with the name of the parser that produced it.
func (c Chain) Parse(text string) (json.RawMessage, string, error) {
	attempts := make([]Attempt, 0, len(c))
	for _, p := range c {
		raw, err := p.Parse(text)
		if err == nil {
			return raw, p.Name(), nil
		}
		attempts = append(attempts, Attempt{Parser: p.Name(), Err: err})
	}
	return nil, "", &MalformedOutputError{Attempts: attempts}
}

// Names lists the parser names in order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, p := range c {
		names[i] = p.Name()
	}
	return names
}

// DirectJSON accepts text that is, after trimming, a JSON object.
type DirectJSON struct{}

func (DirectJSON) Name() string { return "direct" }

func (DirectJSON) Parse(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("empty text")
	}
	if err := checkObject(trimmed); err != nil {
		return nil, err
	}
	return json.RawMessage(trimmed), nil
}

func checkObject(s string) error {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return fmt.Errorf("not a JSON object: %w", err)
	}
	return nil
}
