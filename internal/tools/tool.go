// Package tools defines the contract every content generator tool
// implements and the registry the server and CLI route through.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abhisek/edugen/internal/generation"
)

// RoutePrefix is where every tool is mounted.
const RoutePrefix = "/api/tools/"

// Tool is one form-driven generator.
type Tool interface {
	// Name is the stable identifier and route segment, e.g. "rubric-generator".
	Name() string

	// Title is a human-readable label for catalogs.
	Title() string

	// Description says what the tool produces.
	Description() string

	// Required lists the request fields that must be present and non-blank.
	Required() []string

	// Run validates body, generates content and returns the JSON-ready
	// response. Errors are *generation.Error.
	Run(ctx context.Context, gen *generation.Generator, body json.RawMessage) (any, error)
}

// Route returns the HTTP path a tool is served on.
func Route(t Tool) string {
	return RoutePrefix + t.Name()
}

// Info is a catalog entry.
type Info struct {
	Name        string   `json:"name" yaml:"name"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Route       string   `json:"route" yaml:"route"`
	Required    []string `json:"required" yaml:"required"`
}

// Registry holds the tools, keyed by name. It is built once at start and
// read concurrently afterwards.
type Registry struct {
	byName map[string]Tool
	names  []string
}

// NewRegistry builds a registry. Duplicate names are a programming error.
func NewRegistry(ts ...Tool) (*Registry, error) {
	r := &Registry{byName: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		if _, dup := r.byName[t.Name()]; dup {
			return nil, fmt.Errorf("duplicate tool %q", t.Name())
		}
		r.byName[t.Name()] = t
		r.names = append(r.names, t.Name())
	}
	sort.Strings(r.names)
	return r, nil
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// All returns the tools sorted by name.
func (r *Registry) All() []Tool {
	out := make([]Tool, len(r.names))
	for i, n := range r.names {
		out[i] = r.byName[n]
	}
	return out
}

// Catalog describes every tool, sorted by name.
func (r *Registry) Catalog() []Info {
	out := make([]Info, 0, len(r.names))
	for _, t := range r.All() {
		out = append(out, Info{
			Name:        t.Name(),
			Title:       t.Title(),
			Description: t.Description(),
			Route:       Route(t),
			Required:    t.Required(),
		})
	}
	return out
}
