// Package app assembles the provider, generator, tool registry and HTTP
// server from configuration. The CLI commands are thin wrappers over it.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/edugen/internal/config"
	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/llm"
	"github.com/abhisek/edugen/internal/server"
	"github.com/abhisek/edugen/internal/tools"
	"github.com/abhisek/edugen/internal/tools/lessonplan"
	"github.com/abhisek/edugen/internal/tools/mcq"
	"github.com/abhisek/edugen/internal/tools/peel"
	"github.com/abhisek/edugen/internal/tools/promptgen"
	"github.com/abhisek/edugen/internal/tools/quiz"
	"github.com/abhisek/edugen/internal/tools/report"
	"github.com/abhisek/edugen/internal/tools/rubric"
	"github.com/abhisek/edugen/internal/tools/sow"
)

// App holds the long-lived dependencies shared by every request.
type App struct {
	Config    config.Config
	Log       *zap.Logger
	Generator *generation.Generator
	Tools     *tools.Registry
}

// Registry returns every content generator tool.
func Registry() (*tools.Registry, error) {
	return tools.NewRegistry(
		lessonplan.New(),
		mcq.New(),
		peel.New(),
		promptgen.New(),
		quiz.New(),
		report.New(),
		rubric.New(),
		sow.New(),
	)
}

// New builds the configured provider and everything on top of it. A
// missing credential does not fail construction: the provider reports it
// on every call and the HTTP gate reports it on every request.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, log)
	var cfgErr *llm.ErrConfiguration
	switch {
	case errors.As(err, &cfgErr):
		log.Warn("LLM provider not configured", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
		provider = llm.Unconfigured(cfgErr)
	case err != nil:
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return NewWithProvider(cfg, provider, log)
}

// NewWithProvider is New with an already constructed provider.
func NewWithProvider(cfg config.Config, provider llm.Provider, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	registry, err := Registry()
	if err != nil {
		return nil, err
	}
	return &App{
		Config:    cfg,
		Log:       log,
		Generator: generation.New(provider, cfg.Generation, log),
		Tools:     registry,
	}, nil
}

// Server returns the HTTP server, gated on both provider credentials.
func (a *App) Server() (*server.Server, error) {
	return server.New(a.Config.Server.Addr, a.Generator, a.Tools, a.Config.LLM.CheckCredentials, a.Log)
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	srv, err := a.Server()
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// Generate runs one tool directly, without HTTP. Errors are
// *generation.Error.
func (a *App) Generate(ctx context.Context, tool string, body json.RawMessage) (any, error) {
	t, ok := a.Tools.Get(tool)
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", tool)
	}
	return t.Run(ctx, a.Generator, body)
}
