package llm

import (
	"sort"
	"strings"
)

// ModelCost holds per-million-token pricing for a model in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// Dated snapshots such as "gpt-4o-mini-2024-07-18" fall back to their
// base model.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	for base, c := range modelCosts {
		if strings.HasPrefix(modelID, base+"-20") {
			return &c
		}
	}
	return nil
}

// ModelInfo describes a model the service can be configured with.
type ModelInfo struct {
	Alias    string
	ID       string
	Provider string
	Cost     *ModelCost
}

// KnownModels lists the friendly model aliases of every backend, sorted by
// provider then alias.
func KnownModels() []ModelInfo {
	var out []ModelInfo
	add := func(provider string, models map[string]string) {
		for alias, id := range models {
			out = append(out, ModelInfo{Alias: alias, ID: id, Provider: provider, Cost: LookupCost(id)})
		}
	}
	add("openai", openaiModels)
	add("gemini", geminiModels)
	add("anthropic", anthropicModels)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Provider != out[j].Provider {
			return out[i].Provider < out[j].Provider
		}
		return out[i].Alias < out[j].Alias
	})
	return out
}

// modelCosts covers the models reachable through the aliases above plus
// their common neighbours. Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// OpenAI
	"gpt-3.5-turbo":       {0.5, 1.5},
	"gpt-4-turbo":         {10, 30},
	"gpt-4-turbo-preview": {10, 30},
	"gpt-4.1-mini":        {0.4, 1.6},
	"gpt-4o":              {2.5, 10},
	"gpt-4o-mini":         {0.15, 0.6},
	"gpt-5-mini":          {0.25, 2},

	// Google
	"gemini-1.5-flash":     {0.075, 0.3},
	"gemini-1.5-pro":       {1.25, 5},
	"gemini-2.0-flash":     {0.1, 0.4},
	"gemini-2.0-flash-exp": {0, 0},
	"gemini-2.0-pro":       {1.25, 10},
	"gemini-2.5-flash":     {0.3, 2.5},

	// Anthropic
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
}
