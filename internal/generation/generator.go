// Package generation turns a tool's prompt into validated structured
// content.
//
// Every tool goes through Generate: one provider call, recovery of the
// JSON object (by extraction or provider-constrained output), schema
// validation, decoding and the tool's semantic checks. A Result exists only
// if all of these passed.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/edugen/internal/extract"
	"github.com/abhisek/edugen/internal/llm"
	"github.com/abhisek/edugen/internal/metrics"
)

// Generator runs jobs against a single shared provider.
// It holds no per-request state and is safe for concurrent use.
type Generator struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
	now      func() time.Time
}

// New creates a Generator. A nil logger disables output.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{provider: provider, cfg: cfg, log: log.Named("generation"), now: time.Now}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Model returns the identifier of the model serving requests.
func (g *Generator) Model() string { return g.provider.ModelID() }

// Job is one generation request from a tool.
type Job struct {
	// Tool names the caller, for logs, metrics and errors.
	Tool string

	// System is the role preamble.
	System string

	// Prompt is the interpolated narrative template. The schema
	// description is appended by the generator.
	Prompt string

	// Schema is the tool's ResponseSchema. Required unless Text is set.
	Schema *llm.Schema

	// Parsers overrides the extraction chain used in extract mode.
	// Nil means extract.Default().
	Parsers extract.Chain

	// JSONMode asks the provider for a bare JSON object in extract mode.
	JSONMode bool

	// MaxTokens overrides the configured response budget when positive.
	MaxTokens int
}

// Metadata describes how a result was produced.
type Metadata struct {
	Timestamp        time.Time `json:"timestamp"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
	Version          string    `json:"version"`
	Model            string    `json:"model"`
	Mode             Mode      `json:"mode"`
	Strategy         string    `json:"strategy"`
}

// Result is validated content. It is never mutated after construction.
type Result[T any] struct {
	Content T
	Raw     json.RawMessage
	Meta    Metadata
}

// Generate runs job and decodes the validated output into T, then applies
// checks in order. The first failing check aborts with a validation error.
func Generate[T any](ctx context.Context, g *Generator, job Job, checks ...Check[T]) (*Result[T], error) {
	start := g.now()
	res, err := generate(ctx, g, job, start, checks)
	g.finish(job.Tool, start, err)
	return res, err
}

func generate[T any](ctx context.Context, g *Generator, job Job, start time.Time, checks []Check[T]) (*Result[T], error) {
	if job.Schema == nil {
		return nil, &Error{Kind: KindConfiguration, Tool: job.Tool, Message: "Content generation failed",
			Err: fmt.Errorf("tool %s has no response schema", job.Tool)}
	}

	req := g.request(job)
	req.Messages = llm.UserPrompt(job.Prompt + "\n\n" + llm.Describe(job.Schema))
	if g.cfg.Mode == ModeConstrained {
		req.Schema = job.Schema
	} else {
		req.JSONMode = job.JSONMode
	}

	resp, err := g.call(ctx, job, req)
	if err != nil {
		return nil, err
	}

	raw, strategy := resp.Content, "constrained"
	if g.cfg.Mode != ModeConstrained {
		parsers := job.Parsers
		if parsers == nil {
			parsers = extract.Default()
		}
		raw, strategy, err = parsers.Parse(string(resp.Content))
		if err != nil {
			return nil, Classify(job.Tool, err)
		}
	}
	metrics.ObserveStrategy(job.Tool, strategy)

	if err := llm.Validate(job.Schema, raw); err != nil {
		return nil, Classify(job.Tool, err)
	}

	var content T
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, &Error{Kind: KindMalformedOutput, Tool: job.Tool, Message: "Content generation failed",
			Err: fmt.Errorf("decode %s output: %w", job.Tool, err)}
	}

	for _, c := range checks {
		if err := c.Check(&content); err != nil {
			return nil, &Error{Kind: KindValidation, Tool: job.Tool, Message: "Content generation failed",
				Err: &CheckError{Check: c.Name(), Err: err}}
		}
	}

	return &Result[T]{Content: content, Raw: raw, Meta: g.metadata(start, resp, strategy)}, nil
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// GenerateText runs a job whose output is prose rather than JSON. Runs of
// three or more newlines collapse to a blank line and the text is trimmed.
func GenerateText(ctx context.Context, g *Generator, job Job) (*Result[string], error) {
	start := g.now()
	res, err := generateText(ctx, g, job, start)
	g.finish(job.Tool, start, err)
	return res, err
}

func generateText(ctx context.Context, g *Generator, job Job, start time.Time) (*Result[string], error) {
	req := g.request(job)
	req.Messages = llm.UserPrompt(job.Prompt)

	resp, err := g.call(ctx, job, req)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(excessNewlines.ReplaceAllString(string(resp.Content), "\n\n"))
	if text == "" {
		return nil, Classify(job.Tool, &llm.ErrEmptyResponse{Model: resp.Model})
	}
	raw, _ := json.Marshal(text)
	return &Result[string]{Content: text, Raw: raw, Meta: g.metadata(start, resp, "text")}, nil
}

func (g *Generator) request(job Job) llm.Request {
	maxTokens := g.cfg.MaxTokens
	if job.MaxTokens > 0 {
		maxTokens = job.MaxTokens
	}
	return llm.Request{
		System:      job.System,
		MaxTokens:   maxTokens,
		Temperature: g.cfg.Temperature,
	}
}

func (g *Generator) call(ctx context.Context, job Job, req llm.Request) (*llm.Response, error) {
	ctx = llm.WithPurpose(ctx, job.Tool)
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, Classify(job.Tool, err)
	}

	var cost float64
	if c := llm.LookupCost(resp.Model); c != nil {
		cost = c.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
	metrics.ObserveUsage(job.Tool, resp.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens, cost)
	return resp, nil
}

func (g *Generator) metadata(start time.Time, resp *llm.Response, strategy string) Metadata {
	now := g.now()
	model := resp.Model
	if model == "" {
		model = g.provider.ModelID()
	}
	return Metadata{
		Timestamp:        now.UTC(),
		ProcessingTimeMs: now.Sub(start).Milliseconds(),
		Version:          g.cfg.Version,
		Model:            model,
		Mode:             g.cfg.Mode,
		Strategy:         strategy,
	}
}

func (g *Generator) finish(tool string, start time.Time, err error) {
	elapsed := g.now().Sub(start)
	if err == nil {
		metrics.ObserveGeneration(tool, "ok", elapsed)
		g.log.Debug("content generated", zap.String("tool", tool), zap.Duration("elapsed", elapsed))
		return
	}
	genErr := Classify(tool, err)
	metrics.ObserveGeneration(tool, string(genErr.Kind), elapsed)
	g.log.Warn("generation failed",
		zap.String("tool", tool),
		zap.String("kind", string(genErr.Kind)),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
}
